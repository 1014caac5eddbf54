package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/espembed/docsembed/pkg/launchpad"
	"github.com/espembed/docsembed/pkg/wokwi"
)

// newTargetsCmd creates the targets command, which lists the supported
// simulation targets with their dev board and chipset label.
func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the supported simulation targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Supported targets"))
			for _, target := range wokwi.Targets() {
				board, err := wokwi.LookupBoard(target)
				if err != nil {
					return err
				}
				chipset, err := launchpad.Chipset(target)
				if err != nil {
					return err
				}
				printKeyValue(target, chipset+"  "+StyleDim.Render(board.PartType))
			}
			return nil
		},
	}
}
