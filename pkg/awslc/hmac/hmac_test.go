package hmac_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/hmac"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/rand"
)

// RFC 4231 test case 1.
var (
	rfc4231Key  = bytes.Repeat([]byte{0x0b}, 20)
	rfc4231Data = []byte("Hi There")
)

func TestSignKnownAnswers(t *testing.T) {
	tests := []struct {
		alg  *hmac.Algorithm
		want string
	}{
		{hmac.HMAC_SHA256, "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7"},
		{hmac.HMAC_SHA512, "87aa7cdea5ef619d4ff0b4241a1d6cb02379f4e2ce4ec2787ad0b30545e17cdedaa833b7d6b8a702038b274eaea3f4e4be9d914eeb61f1702e696c203a126854"},
	}
	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			key, err := hmac.NewKey(tt.alg, rfc4231Key)
			require.NoError(t, err)
			defer key.Close()

			tag, err := hmac.Sign(key, rfc4231Data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(tag.Bytes()))
			assert.NoError(t, hmac.Verify(key, rfc4231Data, tag.Bytes()))

			ctx, err := hmac.NewContext(key)
			require.NoError(t, err)
			_, err = ctx.Write([]byte("Hi "))
			require.NoError(t, err)
			require.NoError(t, ctx.Update([]byte("There")))
			streamed, err := ctx.Sign()
			require.NoError(t, err)
			assert.Equal(t, tag.Bytes(), streamed.Bytes())
		})
	}
}

func TestVerifyRejects(t *testing.T) {
	key, err := hmac.GenerateKey(hmac.HMAC_SHA384, rand.SystemRandom{})
	require.NoError(t, err)
	defer key.Close()

	tag, err := hmac.Sign(key, []byte("message"))
	require.NoError(t, err)
	bad := bytes.Clone(tag.Bytes())
	bad[0] ^= 1

	for name, tc := range map[string]struct{ data, tag []byte }{
		"flipped tag":   {[]byte("message"), bad},
		"other message": {[]byte("messagf"), tag.Bytes()},
		"short tag":     {[]byte("message"), tag.Bytes()[:16]},
	} {
		t.Run(name, func(t *testing.T) {
			err := hmac.Verify(key, tc.data, tc.tag)
			assert.True(t, errors.Is(err, awslc.ErrVerificationFailed))
		})
	}
}

func TestKeyConcurrentSign(t *testing.T) {
	key, err := hmac.NewKey(hmac.HMAC_SHA256, rfc4231Key)
	require.NoError(t, err)
	defer key.Close()
	want, err := hmac.Sign(key, rfc4231Data)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				got, err := hmac.Sign(key, rfc4231Data)
				assert.NoError(t, err)
				assert.Equal(t, want.Bytes(), got.Bytes())
			}
		}()
	}
	wg.Wait()
}

func TestGenerateKeyUsesRNG(t *testing.T) {
	seed := bytes.Repeat([]byte{9}, rand.EntropyLen)
	tagWith := func() []byte {
		d, err := rand.NewDRBG(seed, nil)
		require.NoError(t, err)
		defer d.Close()
		key, err := hmac.GenerateKey(hmac.HMAC_SHA256, d)
		require.NoError(t, err)
		defer key.Close()
		tag, err := hmac.Sign(key, []byte("x"))
		require.NoError(t, err)
		return tag.Bytes()
	}
	assert.Equal(t, tagWith(), tagWith())
}

func TestClosedKey(t *testing.T) {
	key, err := hmac.NewKey(hmac.HMAC_SHA1_FOR_LEGACY_USE_ONLY, []byte("k"))
	require.NoError(t, err)
	key.Close()
	_, err = hmac.Sign(key, []byte("x"))
	assert.True(t, errors.Is(err, awslc.ErrInvalidInput))
}

func TestNilKey(t *testing.T) {
	var e *awslc.Error

	_, err := hmac.Sign(nil, []byte("x"))
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "hmac.Sign", e.Op)
	assert.ErrorIs(t, err, awslc.ErrInvalidInput)

	err = hmac.Verify(nil, []byte("x"), make([]byte, 32))
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "hmac.Verify", e.Op)
	assert.ErrorIs(t, err, awslc.ErrInvalidInput)

	_, err = hmac.NewContext(nil)
	assert.ErrorIs(t, err, awslc.ErrInvalidInput)
}
