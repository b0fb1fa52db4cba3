package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomDigits(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		id := newAccountID()
		require.Len(t, id, accountIDDigits)
		require.NotEqual(t, byte('0'), id[0], "account id keeps fixed width")

		passcode := newPasscode()
		require.Len(t, passcode, passcodeDigits)

		for _, s := range []string{id, passcode} {
			for _, c := range []byte(s) {
				require.GreaterOrEqual(t, c, byte('0'))
				require.LessOrEqual(t, c, byte('9'))
			}
		}
	}
}
