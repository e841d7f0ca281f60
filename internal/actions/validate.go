package actions

import (
	"errors"
	"fmt"

	cberrors "github.com/MedMaalej/copybara/internal/errors"
	"github.com/MedMaalej/copybara/internal/output"
	"github.com/MedMaalej/copybara/internal/runtime"
)

// ValidateAction builds the configured chain and its reverse. Only a chain
// that cannot be built is an error; a missing reverse is reported as a warning.
func ValidateAction(rt *runtime.Context) error {
	chain, err := rt.Chain(false)
	if err != nil {
		rt.Splog.Error("%s", output.Failure(err.Error()))
		return err
	}
	rt.Splog.Info("%s", output.Success(fmt.Sprintf("✓ %d transformation(s) in %s", chain.Len(), rt.Config.Path())))

	if _, err := chain.ReverseChain(); err != nil {
		if !errors.Is(err, cberrors.ErrNonReversible) {
			return err
		}
		rt.Splog.Warn("Not reversible: %s", err.Error())
		return nil
	}
	rt.Splog.Info("%s", output.Success("✓ reversible"))
	return nil
}
