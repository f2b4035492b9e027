package snmp

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/openl2m/core/pkg/settings"
)

// UDPClient is the gosnmp-backed transport.
type UDPClient struct {
	agent     *gosnmp.GoSNMP
	connected bool
}

// NewUDPClient builds a transport for one agent from its profile. The
// profile is validated here; construction fails rather than producing a
// client that cannot authenticate.
func NewUDPClient(target string, profile *Profile, cfg settings.Settings) (*UDPClient, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: no profile", ErrBadProfile)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	port := profile.Port
	if port == 0 {
		port = DefaultPort
	}

	agent := &gosnmp.GoSNMP{
		Target:         target,
		Port:           port,
		Timeout:        time.Duration(cfg.SNMPTimeoutSeconds) * time.Second,
		Retries:        cfg.SNMPRetries,
		MaxOids:        gosnmp.MaxOids,
		MaxRepetitions: uint32(cfg.SNMPMaxRepetitions),
	}

	switch profile.Version {
	case Version2c:
		agent.Version = gosnmp.Version2c
		agent.Community = profile.Community
	case Version3:
		agent.Version = gosnmp.Version3
		agent.SecurityModel = gosnmp.UserSecurityModel

		usm := &gosnmp.UsmSecurityParameters{
			UserName: profile.Username,
		}
		switch profile.SecLevel {
		case SecNoAuthNoPriv:
			agent.MsgFlags = gosnmp.NoAuthNoPriv
		case SecAuthNoPriv:
			agent.MsgFlags = gosnmp.AuthNoPriv
			configureV3Auth(usm, profile)
		case SecAuthPriv:
			agent.MsgFlags = gosnmp.AuthPriv
			configureV3Auth(usm, profile)
			configureV3Priv(usm, profile)
		}
		agent.SecurityParameters = usm
	}

	return &UDPClient{agent: agent}, nil
}

func configureV3Auth(usm *gosnmp.UsmSecurityParameters, profile *Profile) {
	switch strings.ToUpper(profile.AuthProtocol) {
	case AuthMD5:
		usm.AuthenticationProtocol = gosnmp.MD5
	case AuthSHA:
		usm.AuthenticationProtocol = gosnmp.SHA
	}
	usm.AuthenticationPassphrase = profile.AuthPassphrase
}

func configureV3Priv(usm *gosnmp.UsmSecurityParameters, profile *Profile) {
	switch strings.ToUpper(profile.PrivProtocol) {
	case PrivDES:
		usm.PrivacyProtocol = gosnmp.DES
	case PrivAES:
		usm.PrivacyProtocol = gosnmp.AES
	}
	usm.PrivacyPassphrase = profile.PrivPassphrase
}

// Connect opens the socket. For v3 this also runs engine discovery, so auth
// failures surface here.
func (c *UDPClient) Connect() error {
	if c.connected {
		return nil
	}
	if err := c.agent.Connect(); err != nil {
		return classifyError("", err)
	}
	c.connected = true
	return nil
}

// Close releases the UDP socket
func (c *UDPClient) Close() error {
	if !c.connected || c.agent.Conn == nil {
		return nil
	}
	c.connected = false
	return c.agent.Conn.Close()
}

// SetMaxRepetitions lowers the bulk repetition count
func (c *UDPClient) SetMaxRepetitions(n int) {
	if n > 0 {
		c.agent.MaxRepetitions = uint32(n)
	}
}

// Get reads one OID
func (c *UDPClient) Get(oid string) (Value, error) {
	packet, err := c.agent.Get([]string{oid})
	if err != nil {
		return Value{}, classifyError(oid, err)
	}
	if packet.Error != gosnmp.NoError {
		return Value{}, &ProtocolError{OID: oid, Status: fmt.Sprintf("%v", packet.Error)}
	}
	if len(packet.Variables) == 0 {
		return Value{}, &ProtocolError{OID: oid, Status: "empty response"}
	}

	v := fromSnmpPDU(packet.Variables[0])
	if v.Type == TypeNoSuchObject {
		return Value{}, fmt.Errorf("%w: %s", ErrNoSuchObject, oid)
	}
	return v, nil
}

// GetMulti reads several OIDs in one request
func (c *UDPClient) GetMulti(oids []string) ([]PDU, error) {
	packet, err := c.agent.Get(oids)
	if err != nil {
		return nil, classifyError(strings.Join(oids, ","), err)
	}
	if packet.Error != gosnmp.NoError {
		return nil, &ProtocolError{OID: strings.Join(oids, ","), Status: fmt.Sprintf("%v", packet.Error)}
	}

	pdus := make([]PDU, 0, len(packet.Variables))
	for _, pdu := range packet.Variables {
		pdus = append(pdus, PDU{OID: pdu.Name, Value: fromSnmpPDU(pdu)})
	}
	return pdus, nil
}

// WalkBranch bulk-walks a branch, terminating when the agent's response
// leaves it. Missing-object varbinds are skipped and not counted.
func (c *UDPClient) WalkBranch(branch string, fn WalkFunc) (int, error) {
	count := 0
	err := c.agent.BulkWalk(branch, func(pdu gosnmp.SnmpPDU) error {
		v := fromSnmpPDU(pdu)
		if v.Type == TypeNoSuchObject {
			return nil
		}
		count++
		return fn(pdu.Name, v)
	})
	if err != nil {
		return count, classifyError(branch, err)
	}
	return count, nil
}

// Set writes one OID
func (c *UDPClient) Set(oid string, value Value) error {
	return c.SetMulti([]PDU{{OID: oid, Value: value}})
}

// SetMulti writes several OIDs in a single request
func (c *UDPClient) SetMulti(pdus []PDU) error {
	vars := make([]gosnmp.SnmpPDU, 0, len(pdus))
	for _, p := range pdus {
		vars = append(vars, toSnmpPDU(p.OID, p.Value))
	}

	packet, err := c.agent.Set(vars)
	if err != nil {
		return classifyError(pdus[0].OID, err)
	}
	if packet.Error != gosnmp.NoError {
		return &ProtocolError{OID: pdus[0].OID, Status: fmt.Sprintf("%v", packet.Error)}
	}
	return nil
}
