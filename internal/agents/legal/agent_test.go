package legal_test

import (
	"context"
	"testing"

	"github.com/ethanbaker/guardian/internal/agents/legal"
	"github.com/ethanbaker/guardian/pkg/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, input string) agent.Finding {
	t.Helper()

	a := legal.NewAgent()
	rc := agent.NewRunContext()
	finding, err := a.Process(context.Background(), input, rc)
	require.NoError(t, err)
	return finding
}

func TestIndiaBlackmail(t *testing.T) {
	finding := run(t, "Location: India. He is blackmailing me with photos")

	laws, ok := finding["applicable_laws"].([]string)
	require.True(t, ok)
	assert.Contains(t, laws, "Section 384 IPC (Extortion)")
	assert.Contains(t, finding["police_contact_structure"], "Cyber Crime")
}

func TestIndiaStalking(t *testing.T) {
	finding := run(t, "I live in Delhi and someone is stalking me")

	laws := finding["applicable_laws"].([]string)
	assert.Equal(t, []string{"Section 354D IPC (Stalking)"}, laws)
}

func TestIndiaDomestic(t *testing.T) {
	finding := run(t, "india: my husband beats me")

	laws := finding["applicable_laws"].([]string)
	assert.Contains(t, laws, "Protection of Women from Domestic Violence Act, 2005")
}

func TestIndiaGenericFallback(t *testing.T) {
	finding := run(t, "I need help in India with an online problem")

	laws := finding["applicable_laws"].([]string)
	assert.Contains(t, laws, "Information Technology Act, 2000")
}

func TestUSA(t *testing.T) {
	finding := run(t, "I am in the USA and being harassed")

	laws := finding["applicable_laws"].([]string)
	assert.Contains(t, laws, "18 U.S. Code § 2261A (Stalking)")
}

func TestGenericDefault(t *testing.T) {
	finding := run(t, "someone keeps messaging me")

	laws := finding["applicable_laws"].([]string)
	assert.Equal(t, []string{"Check local penal code for Harassment/Cyberbullying"}, laws)

	rights := finding["rights_of_the_victim"].([]string)
	assert.Contains(t, rights, "Right to safety")
}

func TestErrorFinding(t *testing.T) {
	a := legal.NewAgent()
	finding := a.ErrorFinding(assert.AnError)

	assert.Equal(t, []string{"Error"}, finding["applicable_laws"])
	assert.Equal(t, "Error", finding["police_contact_structure"])
}
