package connect

import (
	"fmt"
	"sync"

	"github.com/openl2m/core/pkg/audit"
	"github.com/openl2m/core/pkg/snmp"
)

// fakeClient is a scripted snmp.Client. Walk data replays in insertion
// order, sets are recorded and update the readable state so
// read-modify-write paths behave like a device.
type fakeClient struct {
	walkData []snmp.PDU
	getData  map[string]snmp.Value

	setLog []snmp.PDU

	failOnWalk map[string]error // branch OID -> error
	failOnSet  map[string]error // oid -> error; consumed on first use
	failOnGet  map[string]error

	connectErr error
	connected  bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		getData:    make(map[string]snmp.Value),
		failOnWalk: make(map[string]error),
		failOnSet:  make(map[string]error),
		failOnGet:  make(map[string]error),
	}
}

// addWalk scripts one varbind beneath a named branch.
func (f *fakeClient) addWalk(branch, index string, value snmp.Value) {
	oid := snmp.MIB[branch] + "." + index
	f.walkData = append(f.walkData, snmp.PDU{OID: oid, Value: value})
	f.getData[oid] = value
}

func (f *fakeClient) Connect() error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) SetMaxRepetitions(int) {}

func (f *fakeClient) Get(oid string) (snmp.Value, error) {
	if err := f.failOnGet[oid]; err != nil {
		return snmp.Value{}, err
	}
	v, ok := f.getData[oid]
	if !ok {
		return snmp.Value{}, fmt.Errorf("%w: %s", snmp.ErrNoSuchObject, oid)
	}
	return v, nil
}

func (f *fakeClient) GetMulti(oids []string) ([]snmp.PDU, error) {
	pdus := make([]snmp.PDU, 0, len(oids))
	for _, oid := range oids {
		v, err := f.Get(oid)
		if err != nil {
			return nil, err
		}
		pdus = append(pdus, snmp.PDU{OID: oid, Value: v})
	}
	return pdus, nil
}

func (f *fakeClient) WalkBranch(branch string, fn snmp.WalkFunc) (int, error) {
	if err := f.failOnWalk[branch]; err != nil {
		return 0, err
	}
	count := 0
	for _, pdu := range f.walkData {
		if _, ok := snmp.OidInBranch(branch, pdu.OID); !ok {
			continue
		}
		count++
		if err := fn(pdu.OID, pdu.Value); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (f *fakeClient) Set(oid string, value snmp.Value) error {
	return f.SetMulti([]snmp.PDU{{OID: oid, Value: value}})
}

func (f *fakeClient) SetMulti(pdus []snmp.PDU) error {
	for _, pdu := range pdus {
		if err := f.failOnSet[pdu.OID]; err != nil {
			delete(f.failOnSet, pdu.OID)
			return err
		}
	}
	for _, pdu := range pdus {
		f.setLog = append(f.setLog, pdu)
		f.getData[pdu.OID] = pdu.Value
	}
	return nil
}

// memorySink captures audit events for assertions.
type memorySink struct {
	mu     sync.Mutex
	events []*audit.Event
}

func (s *memorySink) Log(event *audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *memorySink) byAction(action string) []*audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*audit.Event
	for _, e := range s.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}
