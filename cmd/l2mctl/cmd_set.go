package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change switch state",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "vlan <switch> <ifIndex> <vid>",
			Short: "Change an interface's untagged vlan",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSetVlan(args[0], args[1], args[2])
			},
		},
		&cobra.Command{
			Use:   "port <switch> <ifIndex> up|down",
			Short: "Set an interface administratively up or down",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSetPort(args[0], args[1], args[2])
			},
		},
		&cobra.Command{
			Use:   "poe <switch> <ifIndex>",
			Short: "Power-cycle an interface's PoE",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSetPoe(args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "alias <switch> <ifIndex> <description>",
			Short: "Edit an interface description",
			Args:  cobra.MinimumNArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSetAlias(args[0], args[1], strings.Join(args[2:], " "))
			},
		},
	)
	return cmd
}

func parseIfIndex(arg string) (int, error) {
	ifIndex, err := strconv.Atoi(arg)
	if err != nil || ifIndex < 1 {
		return 0, fmt.Errorf("invalid ifIndex %q", arg)
	}
	return ifIndex, nil
}

func runSetVlan(switchName, ifIndexArg, vidArg string) error {
	ifIndex, err := parseIfIndex(ifIndexArg)
	if err != nil {
		return err
	}
	vid, err := strconv.Atoi(vidArg)
	if err != nil || vid < 1 || vid > 4094 {
		return fmt.Errorf("invalid vlan id %q", vidArg)
	}

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
	iface, ok := c.GetInterface(ifIndex)
	if !ok {
		return fmt.Errorf("interface %d not found on %s", ifIndex, switchName)
	}

	oldVid := iface.UntaggedVlan
	if err := c.SetUntaggedVlan(ctx, ifIndex, oldVid, vid); err != nil {
		return err
	}
	fmt.Printf("%s: %s untagged vlan %d -> %d\n", switchName, iface.Name, oldVid, vid)
	if c.IsSaveNeeded(ctx) {
		fmt.Println("note: running config differs from startup; use 'l2mctl save' to persist")
	}
	printWarnings(c)
	return nil
}

func runSetPort(switchName, ifIndexArg, state string) error {
	ifIndex, err := parseIfIndex(ifIndexArg)
	if err != nil {
		return err
	}

	var up bool
	switch state {
	case "up":
		up = true
	case "down":
		up = false
	default:
		return fmt.Errorf("state must be up or down, not %q", state)
	}

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
	if err := c.SetAdminStatus(ctx, ifIndex, up); err != nil {
		return err
	}
	fmt.Printf("%s: interface %d admin %s\n", switchName, ifIndex, state)
	printWarnings(c)
	return nil
}

func runSetPoe(switchName, ifIndexArg string) error {
	ifIndex, err := parseIfIndex(ifIndexArg)
	if err != nil {
		return err
	}

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
	if err := c.TogglePoe(ctx, ifIndex); err != nil {
		return err
	}
	fmt.Printf("%s: interface %d PoE power-cycled\n", switchName, ifIndex)
	printWarnings(c)
	return nil
}

func runSetAlias(switchName, ifIndexArg, alias string) error {
	ifIndex, err := parseIfIndex(ifIndexArg)
	if err != nil {
		return err
	}

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
	if err := c.SetAlias(ctx, ifIndex, alias); err != nil {
		return err
	}
	iface, _ := c.GetInterface(ifIndex)
	fmt.Printf("%s: interface %d description set to %q\n", switchName, ifIndex, iface.Alias)
	printWarnings(c)
	return nil
}
