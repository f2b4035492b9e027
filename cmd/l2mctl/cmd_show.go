package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openl2m/core/pkg/model"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Read switch state",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "basic <switch>",
			Short: "System info, interfaces and vlans",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runShowBasic(args[0])
			},
		},
		&cobra.Command{
			Use:   "hardware <switch>",
			Short: "Stack members, models and serials",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runShowHardware(args[0])
			},
		},
		&cobra.Command{
			Use:   "details <switch>",
			Short: "Learned MACs, ARP and LLDP neighbors",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runShowDetails(args[0])
			},
		},
	)
	return cmd
}

func runShowBasic(switchName string) error {
	ctx := context.Background()
	c, sink, err := openConnector(ctx, switchName)
	if err != nil {
		return err
	}
	defer sink.Close()
	defer c.Close()

	if err := c.GetBasic(ctx); err != nil {
		return err
	}
	defer printWarnings(c)

	sys := c.System
	fmt.Printf("%s  (%s)\n", sys.Name, sys.EnterpriseName)
	fmt.Printf("  %s\n", sys.Description)
	fmt.Printf("  location: %s  contact: %s  uptime: %s\n", sys.Location, sys.Contact, sys.Uptime)
	if sys.PoeCapable {
		fmt.Printf("  poe: %dW max, %dW in use\n", sys.PoeMaxPower, sys.PoePowerConsumed)
	}

	fmt.Println("\nVLANs:")
	for vid, vlan := range c.Vlans {
		fmt.Printf("  %4d  %-20s %s\n", vid, vlan.Name, vlan.StatusName())
	}

	fmt.Println("\nInterfaces:")
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  ifIndex\tname\tadmin\toper\tspeed\tvlan\ttagged\tdescription\tflags")
	for _, idx := range c.InterfaceIndexes() {
		iface := c.Interfaces[idx]
		if !iface.Visible {
			continue
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			iface.Index, iface.Name,
			model.StatusName(iface.AdminStatus), model.StatusName(iface.OperStatus),
			iface.SpeedMbps, iface.UntaggedVlan, intsToString(iface.TaggedVlans),
			iface.Alias, ifaceFlags(iface))
	}
	return w.Flush()
}

func runShowHardware(switchName string) error {
	ctx := context.Background()
	c, sink, err := openConnector(ctx, switchName)
	if err != nil {
		return err
	}
	defer sink.Close()
	defer c.Close()

	if err := c.GetHardware(ctx); err != nil {
		return err
	}
	defer printWarnings(c)

	for id, member := range c.StackMembers {
		fmt.Printf("%d: %s %s  serial %s  firmware %s\n",
			id, member.ClassName(), member.Model, member.Serial, member.Version)
	}

	fmt.Println("\nMIB timing:")
	for name, entry := range c.MibTiming() {
		fmt.Printf("  %-36s %5d varbinds  %s\n", name, entry.Count, entry.Elapsed)
	}
	return nil
}

func runShowDetails(switchName string) error {
	ctx := context.Background()
	c, sink, err := openConnector(ctx, switchName)
	if err != nil {
		return err
	}
	defer sink.Close()
	defer c.Close()

	if err := c.GetDetails(ctx); err != nil {
		return err
	}
	defer printWarnings(c)

	for _, idx := range c.InterfaceIndexes() {
		iface := c.Interfaces[idx]
		if len(iface.EthAddresses) == 0 && len(iface.Arp4) == 0 && len(iface.LldpNeighbors) == 0 {
			continue
		}
		fmt.Printf("%s:\n", iface.Name)
		for mac, entry := range iface.EthAddresses {
			if entry.AddressIP4 != "" {
				fmt.Printf("  mac %s (%s)\n", mac, entry.AddressIP4)
			} else {
				fmt.Printf("  mac %s\n", mac)
			}
		}
		for ip, mac := range iface.Arp4 {
			fmt.Printf("  arp %s -> %s\n", ip, mac)
		}
		for _, neighbor := range iface.LldpNeighbors {
			fmt.Printf("  lldp %s (%s) port %s\n", neighbor.SysName, neighbor.ChassisString, neighbor.PortDescr)
		}
	}
	return nil
}

func ifaceFlags(iface *model.Interface) string {
	var flags []string
	if !iface.Manageable {
		flags = append(flags, "ro")
	}
	if iface.PoeEntry != nil {
		flags = append(flags, "poe:"+iface.PoeEntry.StatusName)
	}
	if iface.Disabled {
		flags = append(flags, "disabled:"+iface.DisabledReason)
	}
	return strings.Join(flags, ",")
}

func intsToString(values []int) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}
