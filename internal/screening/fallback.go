package screening

import (
	_ "embed"
	"fmt"

	"github.com/lodteam/screening-bot/internal/recruiting"
	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// DefaultScreeningTest returns the built-in question set used when an opening
// defines no screening test of its own.
func DefaultScreeningTest() (*recruiting.ScreeningTest, error) {
	var test recruiting.ScreeningTest
	if err := yaml.Unmarshal(fallbackYAML, &test); err != nil {
		return nil, fmt.Errorf("parsing built-in screening test: %w", err)
	}

	if len(test.Questions) == 0 {
		return nil, fmt.Errorf("built-in screening test has no questions")
	}

	return &test, nil
}
