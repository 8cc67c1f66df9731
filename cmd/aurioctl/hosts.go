package aurioctl

import (
	"fmt"
	"strings"

	"github.com/go-aurio/aurio"
	"github.com/spf13/cobra"
)

// resolveHost maps a --host flag value to a registered aurio.Host.
// An empty name returns aurio.DefaultHost(); otherwise the name is
// matched case-insensitively against HostID.String() of every
// registered host.
func resolveHost(name string) (aurio.Host, error) {
	if name == "" {
		return aurio.DefaultHost(), nil
	}
	for _, id := range aurio.AvailableHosts() {
		if strings.EqualFold(id.String(), name) {
			return aurio.HostFromID(id)
		}
	}
	return nil, fmt.Errorf("no registered host matches %q", name)
}

var listHostsCmd = &cobra.Command{
	Use:   "list-hosts",
	Short: "List the audio hosts available in this build",
	RunE: func(_ *cobra.Command, _ []string) error {
		ids := aurio.AvailableHosts()
		if len(ids) == 0 {
			fmt.Println("no hosts registered (import a hosts/* package)")
			return nil
		}
		for _, id := range ids {
			h, err := aurio.HostFromID(id)
			if err != nil {
				fmt.Printf("%-16s error: %v\n", id, err)
				continue
			}
			status := "unavailable"
			if h.IsAvailable() {
				status = "available"
			}
			fmt.Printf("%-16s %s\n", id, status)
		}
		return nil
	},
}
