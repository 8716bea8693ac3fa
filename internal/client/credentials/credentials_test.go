package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AlwaysEmpty(t *testing.T) {
	c := New()
	require.NotNil(t, c)
	assert.True(t, c.IsEmpty())
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		creds *UserCredentials
		want  bool
	}{
		{"empty", &UserCredentials{}, true},
		{"username only", &UserCredentials{Username: "alice"}, false},
		{"secret only", &UserCredentials{Secret: []byte("pw")}, false},
		{"token only", &UserCredentials{AccessToken: "tok"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.creds.IsEmpty())
		})
	}
}

func TestMarshalBinary_RoundTrip(t *testing.T) {
	in := &UserCredentials{Username: "alice", Secret: []byte("pw"), AccessToken: "tok"}

	data, err := in.MarshalBinary()
	require.NoError(t, err)

	out := New()
	require.NoError(t, out.UnmarshalBinary(data))
	assert.Equal(t, in, out)
}

func TestStore_ReplaceAndCurrent(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.Current())

	first := &UserCredentials{Username: "alice"}
	s.Replace(first)
	assert.Same(t, first, s.Current())

	second := &UserCredentials{Username: "bob"}
	s.Replace(second)
	assert.Same(t, second, s.Current())
}

func TestStore_ReplaceWipesOutgoingSecret(t *testing.T) {
	s := NewStore()

	first := &UserCredentials{Username: "alice", Secret: []byte("pw-one")}
	s.Replace(first)

	s.Replace(&UserCredentials{Username: "bob", Secret: []byte("pw-two")})

	assert.Equal(t, make([]byte, 6), first.Secret, "discarded secret must be zeroed")
	assert.Equal(t, []byte("pw-two"), s.Current().Secret)
}

func TestStore_ReplaceSameValueKeepsSecret(t *testing.T) {
	s := NewStore()

	creds := &UserCredentials{Username: "alice", Secret: []byte("pw")}
	s.Replace(creds)
	s.Replace(creds)

	assert.Equal(t, []byte("pw"), creds.Secret)
}
