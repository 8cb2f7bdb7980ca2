package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mvnfetch/pkg/errors"
)

// coordinateFlags takes the root coordinate from -l or a positional
// argument.
type coordinateFlags struct {
	library string
	choice  string
}

func (f *coordinateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.library, "library", "l", "", "the library as groupId:artifactId[:version]")
	cmd.Flags().StringVar(&f.choice, "choice", "", "version to use when none is given: latest, release or an index from 'versions'")
}

// resolveArg merges the positional argument into f.library.
func (f *coordinateFlags) resolveArg(args []string) error {
	if len(args) == 1 {
		if f.library != "" && f.library != args[0] {
			return errors.New(errors.ErrCodeInvalidInput, "coordinate given twice: %q and %q", f.library, args[0])
		}
		f.library = args[0]
	}
	if f.library == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a coordinate is required (-l groupId:artifactId[:version])")
	}
	return nil
}
