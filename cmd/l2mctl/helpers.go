package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/openl2m/core/pkg/audit"
	"github.com/openl2m/core/pkg/connect"
	"github.com/openl2m/core/pkg/inventory"
	"github.com/openl2m/core/pkg/settings"
	"github.com/openl2m/core/pkg/store"
)

// defaultAuditLog is where CLI runs record their audit trail
const defaultAuditLog = ".openl2m/audit.jsonl"

// openConnector builds a connector for the named switch from the
// inventory, filling in the acting user and group.
func openConnector(ctx context.Context, switchName string) (*connect.Connector, *audit.FileLogger, error) {
	inv, err := inventory.Load(inventoryPath)
	if err != nil {
		return nil, nil, err
	}

	sw, ok := inv.Switches[switchName]
	if !ok {
		return nil, nil, fmt.Errorf("switch %q not in inventory", switchName)
	}

	name := userName
	if name == "" {
		name = os.Getenv("USER")
	}
	user, ok := inv.Users[name]
	if !ok {
		return nil, nil, fmt.Errorf("user %q not in inventory", name)
	}

	var group *inventory.SwitchGroup
	if groupName != "" {
		if group, ok = inv.Groups[groupName]; !ok {
			return nil, nil, fmt.Errorf("group %q not in inventory", groupName)
		}
	} else {
		group = groupForUser(inv, name, switchName)
	}

	// prompt for v3 secrets kept out of the inventory file
	if profile := inv.SnmpProfileFor(sw); profile != nil && profile.Version == 3 {
		if profile.SecLevel != "noAuthNoPriv" && profile.AuthPassphrase == "" {
			if profile.AuthPassphrase, err = promptSecret("SNMPv3 auth passphrase: "); err != nil {
				return nil, nil, err
			}
		}
		if profile.SecLevel == "authPriv" && profile.PrivPassphrase == "" {
			if profile.PrivPassphrase, err = promptSecret("SNMPv3 priv passphrase: "); err != nil {
				return nil, nil, err
			}
		}
	}

	cfg, err := settings.Load()
	if err != nil {
		return nil, nil, err
	}

	home, _ := os.UserHomeDir()
	sink, err := audit.NewFileLogger(home + "/" + defaultAuditLog)
	if err != nil {
		return nil, nil, err
	}

	c, err := connect.NewConnector(ctx, connect.Params{
		SessionID: fmt.Sprintf("cli-%s", name),
		Store:     store.NewMemorySessionStore(),
		Inventory: inv,
		Switch:    sw,
		Group:     group,
		User:      user,
		Settings:  cfg,
		Sink:      sink,
	})
	if err != nil {
		sink.Close()
		return nil, nil, err
	}
	return c, sink, nil
}

// groupForUser picks the first group granting the user access to the
// switch.
func groupForUser(inv *inventory.Inventory, user, switchName string) *inventory.SwitchGroup {
	for _, group := range inv.Groups {
		hasUser := false
		for _, u := range group.Users {
			if u == user {
				hasUser = true
				break
			}
		}
		if !hasUser {
			continue
		}
		for _, sw := range group.Switches {
			if sw == switchName {
				return group
			}
		}
	}
	return nil
}

func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return string(secret), nil
}

// printWarnings shows connector warnings after an operation.
func printWarnings(c *connect.Connector) {
	for _, warning := range c.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
}
