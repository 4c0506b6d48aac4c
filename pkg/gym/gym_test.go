package gym_test

import (
	"testing"

	"github.com/boristopalov/agentlab/pkg/gym"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	for _, name := range gym.Names() {
		t.Run(name, func(t *testing.T) {
			e, err := gym.Make(name, 42)
			require.NoError(t, err)
			require.NotNil(t, e)
			defer e.Close()

			assert.Contains(t, e.String(), name)
			for i := 0; i < 5; i++ {
				step, err := e.Step(e.ActionSpace().Sample())
				require.NoError(t, err)
				assert.Equal(t, i+1, step.Number)
			}
		})
	}
}

func TestMake_Unknown(t *testing.T) {
	_, err := gym.Make("LunarLander-v2", 0)
	assert.ErrorIs(t, err, gym.ErrUnknownEnvironment)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"CartPole-v0", "CartPole-v1"}, gym.Names())
}
