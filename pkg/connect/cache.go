package connect

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/openl2m/core/pkg/util"
)

// Session cache keys. One session holds at most one switch's walk data.
const (
	cacheKeySwitchID   = "switch_id"
	cacheKeyOidCache   = "oid_cache"
	cacheKeyReadTime   = "basic_info_read_time"
	cacheKeyDuration   = "basic_info_duration"
	cacheKeyHwNeeded   = "hwinfo_needed"
	cacheKeyTiming     = "mib_timing"
	cacheKeySaveNeeded = "save_needed"
)

// cachedSwitchID reads which switch the session cache currently holds.
func (c *Connector) cachedSwitchID(ctx context.Context) (int, bool) {
	raw, found, err := c.sessions.Get(ctx, c.sessionID, cacheKeySwitchID)
	if err != nil || !found {
		return 0, false
	}
	id, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, false
	}
	return id, true
}

// restoreCache rebuilds the model from the session's raw OID data. The
// stored varbinds replay through the same parsers in their original walk
// order, so the derived state (vlan membership, port maps, PoE binding)
// comes out as the live walk produced it.
func (c *Connector) restoreCache(ctx context.Context) bool {
	if c.sessions == nil || c.sessionID == "" {
		return false
	}

	id, found := c.cachedSwitchID(ctx)
	if !found || id != c.sw.ID {
		return false
	}

	raw, found, err := c.sessions.Get(ctx, c.sessionID, cacheKeyOidCache)
	if err != nil || !found {
		return false
	}

	var pdus []cachedPDU
	if err := json.Unmarshal(raw, &pdus); err != nil {
		util.WithSwitch(c.sw.Name).Warnf("Discarding malformed session cache: %v", err)
		_ = c.sessions.Clear(ctx, c.sessionID)
		return false
	}

	for _, pdu := range pdus {
		c.parseOID(pdu.OID, pdu.Value)
	}
	c.oidCache = pdus

	c.System.EnterpriseName = EnterpriseName(c.System.ObjectID)
	c.vendor = vendorForObjectID(c.System.ObjectID)
	c.vendor.MapPoePortToInterface(c)
	c.verifyVlanMembership()

	if raw, found, _ := c.sessions.Get(ctx, c.sessionID, cacheKeyReadTime); found {
		if t, err := time.Parse(time.RFC3339Nano, string(raw)); err == nil {
			c.basicReadTime = t
		}
	}
	if raw, found, _ := c.sessions.Get(ctx, c.sessionID, cacheKeyDuration); found {
		if ns, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			c.basicDuration = time.Duration(ns)
		}
	}
	if raw, found, _ := c.sessions.Get(ctx, c.sessionID, cacheKeyHwNeeded); found {
		c.hwInfoNeeded = string(raw) == "1"
	}
	if raw, found, _ := c.sessions.Get(ctx, c.sessionID, cacheKeyTiming); found {
		var timing MibTiming
		if err := json.Unmarshal(raw, &timing); err == nil {
			c.timing = timing
		}
	}

	return true
}

// saveCache persists the raw walk data and walk metadata into the session.
func (c *Connector) saveCache(ctx context.Context) {
	if c.sessions == nil || c.sessionID == "" {
		return
	}

	put := func(key string, value []byte) {
		if err := c.sessions.Set(ctx, c.sessionID, key, value); err != nil {
			util.WithSwitch(c.sw.Name).Warnf("Failed to write session cache key %s: %v", key, err)
		}
	}

	raw, err := json.Marshal(c.oidCache)
	if err != nil {
		util.WithSwitch(c.sw.Name).Warnf("Failed to serialize oid cache: %v", err)
		return
	}

	put(cacheKeySwitchID, []byte(strconv.Itoa(c.sw.ID)))
	put(cacheKeyOidCache, raw)
	put(cacheKeyReadTime, []byte(c.basicReadTime.Format(time.RFC3339Nano)))
	put(cacheKeyDuration, []byte(strconv.FormatInt(int64(c.basicDuration), 10)))
	if c.hwInfoNeeded {
		put(cacheKeyHwNeeded, []byte("1"))
	} else {
		put(cacheKeyHwNeeded, []byte("0"))
	}
	if timing, err := json.Marshal(c.timing); err == nil {
		put(cacheKeyTiming, timing)
	}
}

// updateCachedOID tracks a mutated value in the raw cache so a later
// restore replays the device's new state.
func (c *Connector) updateCachedOID(ctx context.Context, oid string, value cachedPDU) {
	for i := range c.oidCache {
		if c.oidCache[i].OID == oid {
			c.oidCache[i] = value
			c.saveCache(ctx)
			return
		}
	}
	c.oidCache = append(c.oidCache, value)
	c.saveCache(ctx)
}

// SetSaveNeeded flags in the session that the running config differs from
// startup. Only meaningful when the vendor variant can save at all.
func (c *Connector) SetSaveNeeded(ctx context.Context, needed bool) {
	if c.sessions == nil || c.sessionID == "" {
		return
	}
	if needed {
		if !c.vendor.CanSaveConfig() {
			return
		}
		if err := c.sessions.Set(ctx, c.sessionID, cacheKeySaveNeeded, []byte("1")); err != nil {
			util.WithSwitch(c.sw.Name).Warnf("Failed to set save-needed flag: %v", err)
		}
		return
	}
	if err := c.sessions.Delete(ctx, c.sessionID, cacheKeySaveNeeded); err != nil {
		util.WithSwitch(c.sw.Name).Warnf("Failed to clear save-needed flag: %v", err)
	}
}

// IsSaveNeeded reads the session flag.
func (c *Connector) IsSaveNeeded(ctx context.Context) bool {
	if c.sessions == nil || c.sessionID == "" {
		return false
	}
	raw, found, err := c.sessions.Get(ctx, c.sessionID, cacheKeySaveNeeded)
	return err == nil && found && string(raw) == "1"
}
