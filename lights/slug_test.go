package lights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugs(t *testing.T) {
	r := Report{Controls: []Control{
		{Name: "Caps Lock"},
		{Name: "Generic Indicator"},
		{Name: "Generic Indicator"},
		{Name: "Indicator Red 0"},
	}}
	assert.Equal(t, []string{
		"caps-lock",
		"generic-indicator",
		"generic-indicator-2",
		"indicator-red-0",
	}, Slugs(r))
}
