// l2mctl — operator CLI for the OpenL2M core
//
// l2mctl drives the SNMP device abstraction layer directly against a
// switch from the inventory, for diagnostics and scripted changes:
//
//	l2mctl show basic sw-lab-1           # system, interfaces, vlans
//	l2mctl show hardware sw-lab-1        # stack members, serials
//	l2mctl show details sw-lab-1         # MACs, ARP, LLDP neighbors
//	l2mctl set vlan sw-lab-1 101 20      # change untagged vlan
//	l2mctl set port sw-lab-1 101 down    # admin up/down
//	l2mctl set poe sw-lab-1 101          # power-cycle PoE
//	l2mctl set alias sw-lab-1 101 "..."  # edit description
//	l2mctl save sw-lab-1                 # running -> startup
//	l2mctl audit --switch sw-lab-1       # query the audit log
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openl2m/core/pkg/util"
)

var (
	inventoryPath string
	userName      string
	groupName     string
	verbose       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "l2mctl",
	Short:             "Layer-2 switch management over SNMP",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			return util.SetLogLevel("debug")
		}
		return util.SetLogLevel("warn")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inventoryPath, "inventory", "i", "inventory.yaml", "inventory file")
	rootCmd.PersistentFlags().StringVarP(&userName, "user", "u", "", "act as this inventory user (default: $USER)")
	rootCmd.PersistentFlags().StringVarP(&groupName, "group", "g", "", "act in this switch group")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newShowCmd(),
		newSetCmd(),
		newSaveCmd(),
		newAuditCmd(),
	)
}
