// Package sshcli executes single CLI commands on a switch over SSH. It
// backs the vendor save-config fallback for platforms whose write path is
// not reachable over SNMP.
package sshcli

import (
	"bytes"
	"fmt"
	"time"

	"golang.org/x/crypto/ssh"
)

// DefaultPort is the SSH port used when the profile leaves it unset
const DefaultPort = 22

// Runner executes commands against one switch. Each Run dials a fresh
// connection; switches drop idle CLI sessions quickly anyway.
type Runner struct {
	addr   string
	config *ssh.ClientConfig
}

// NewRunner builds a runner for host with password authentication.
func NewRunner(host, user, pass string, port int) *Runner {
	if port == 0 {
		port = DefaultPort
	}
	return &Runner{
		addr: fmt.Sprintf("%s:%d", host, port),
		config: &ssh.ClientConfig{
			User: user,
			Auth: []ssh.AuthMethod{
				ssh.Password(pass),
			},
			// switch host keys churn on replacement hardware; the
			// inventory is the trust anchor here
			HostKeyCallback: ssh.InsecureIgnoreHostKey(),
			Timeout:         30 * time.Second,
		},
	}
}

// Run executes one command and returns its combined output.
func (r *Runner) Run(command string) (string, error) {
	client, err := ssh.Dial("tcp", r.addr, r.config)
	if err != nil {
		return "", fmt.Errorf("ssh dial %s: %w", r.addr, err)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("ssh session on %s: %w", r.addr, err)
	}
	defer session.Close()

	var output bytes.Buffer
	session.Stdout = &output
	session.Stderr = &output

	if err := session.Run(command); err != nil {
		return output.String(), fmt.Errorf("running %q on %s: %w", command, r.addr, err)
	}
	return output.String(), nil
}
