package connect

import (
	"fmt"

	"github.com/openl2m/core/pkg/connect/sshcli"
	"github.com/openl2m/core/pkg/snmp"
	"github.com/openl2m/core/pkg/util"
)

// Cisco IOS writeMem control: setting 1 copies running-config to startup.
const oidCiscoWriteMem = ".1.3.6.1.4.1.9.2.1.54.0"

// Cisco covers IOS/IOS-XE gear: standard behavior plus a working
// save-config path.
type Cisco struct {
	Standard
}

// Name identifies the variant
func (Cisco) Name() string { return "Cisco SNMP" }

// CanSaveConfig is true: IOS exposes write-mem over SNMP, and the CLI
// fallback covers devices with that OID disabled.
func (Cisco) CanSaveConfig() bool { return true }

// SaveConfig copies running to startup, first over SNMP, then over the CLI
// fallback when the switch has an SSH profile bound.
func (Cisco) SaveConfig(c *Connector) error {
	err := c.client.Set(oidCiscoWriteMem, snmp.IntValue(1))
	if err == nil {
		c.sw.SnmpWriteCount++
		return nil
	}
	util.WithSwitch(c.sw.Name).Warnf("SNMP write-mem failed, trying CLI fallback: %v", err)

	if c.inv == nil {
		return err
	}
	profile := c.inv.SSHProfileFor(c.sw)
	if profile == nil {
		return err
	}

	runner := sshcli.NewRunner(c.sw.PrimaryIP4, profile.Username, profile.Password, profile.Port)
	output, cliErr := runner.Run("write memory")
	if cliErr != nil {
		return fmt.Errorf("snmp write-mem failed (%v); cli fallback failed: %w", err, cliErr)
	}
	util.WithSwitch(c.sw.Name).Debugf("CLI save output: %s", output)
	return nil
}
