package awslc_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/aead"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/digest"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/logging"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/metrics"
)

func TestVerifySlicesAreEqual(t *testing.T) {
	assert.NoError(t, awslc.VerifySlicesAreEqual([]byte("same"), []byte("same")))
	assert.NoError(t, awslc.VerifySlicesAreEqual(nil, []byte{}))

	err := awslc.VerifySlicesAreEqual([]byte("same"), []byte("diff"))
	assert.True(t, errors.Is(err, awslc.ErrUnspecified))
	err = awslc.VerifySlicesAreEqual([]byte("short"), []byte("longer"))
	assert.True(t, errors.Is(err, awslc.ErrUnspecified))
}

func TestZeroizeBytes(t *testing.T) {
	buf := []byte("secret")
	awslc.ZeroizeBytes(buf)
	assert.Equal(t, make([]byte, 6), buf)
	awslc.ZeroizeBytes(nil)
}

func requireServiceIndicator(t *testing.T) {
	t.Helper()
	ind, err := awslc.CheckServiceIndicator(func() error {
		_, err := digest.Digest(digest.SHA256, []byte("abc"))
		return err
	})
	require.NoError(t, err)
	if ind == awslc.NonApprovedMode && !awslc.FIPSMode() {
		t.Skip("engine keeps no service indicator outside FIPS mode")
	}
	require.Equal(t, awslc.ApprovedMode, ind)
}

func TestCheckServiceIndicator(t *testing.T) {
	requireServiceIndicator(t)

	ind, err := awslc.CheckServiceIndicator(func() error {
		_, err := digest.Digest(digest.SHA3_256, []byte("abc"))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, awslc.NonApprovedMode, ind)

	boom := errors.New("boom")
	ind, err = awslc.CheckServiceIndicator(func() error { return boom })
	assert.Equal(t, boom, err)
	assert.Equal(t, awslc.NonApprovedMode, ind)

	ind, err = awslc.CheckServiceIndicator(func() error { return nil })
	require.NoError(t, err)
	assert.Equal(t, awslc.ApprovedMode, ind)
}

func TestCheckServiceIndicatorDigestContext(t *testing.T) {
	requireServiceIndicator(t)

	tests := []struct {
		alg    *digest.Algorithm
		finish awslc.ServiceIndicator
	}{
		{digest.SHA1_FOR_LEGACY_USE_ONLY, awslc.ApprovedMode},
		{digest.SHA224, awslc.ApprovedMode},
		{digest.SHA256, awslc.ApprovedMode},
		{digest.SHA384, awslc.ApprovedMode},
		{digest.SHA512, awslc.ApprovedMode},
		{digest.SHA512_256, awslc.ApprovedMode},
		{digest.SHA3_256, awslc.NonApprovedMode},
		{digest.SHA3_384, awslc.NonApprovedMode},
		{digest.SHA3_512, awslc.NonApprovedMode},
	}

	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			var ctx *digest.Context
			ind, err := awslc.CheckServiceIndicator(func() error {
				var err error
				ctx, err = digest.NewContext(tt.alg)
				return err
			})
			require.NoError(t, err)
			defer ctx.Close()
			assert.Equal(t, awslc.ApprovedMode, ind, "NewContext")

			ind, err = awslc.CheckServiceIndicator(func() error {
				return ctx.Update([]byte("The quick brown fox jumps over the lazy dog"))
			})
			require.NoError(t, err)
			assert.Equal(t, awslc.ApprovedMode, ind, "Update")

			ind, err = awslc.CheckServiceIndicator(func() error {
				_, err := ctx.Finish()
				return err
			})
			require.NoError(t, err)
			assert.Equal(t, tt.finish, ind, "Finish")
		})
	}
}

// background runs op in a loop on another goroutine until the test ends.
func background(t *testing.T, op func()) {
	stop := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for {
			select {
			case <-stop:
				return
			default:
				op()
			}
		}
	}()
	t.Cleanup(func() {
		close(stop)
		<-finished
	})
}

func TestCheckServiceIndicatorConcurrent(t *testing.T) {
	requireServiceIndicator(t)

	key, err := aead.NewUnboundKey(aead.CHACHA20_POLY1305, make([]byte, 32))
	require.NoError(t, err)
	defer key.Close()
	chacha := aead.NewLessSafeKey(key)
	nonce := aead.NonceAssumeUniqueForKey([aead.NonceLen]byte{})

	t.Run("OtherApproved", func(t *testing.T) {
		background(t, func() { _, _ = digest.Digest(digest.SHA256, []byte("x")) })
		for i := 0; i < 2000; i++ {
			ind, err := awslc.CheckServiceIndicator(func() error {
				_, err := chacha.Seal(nonce, nil, []byte("msg"))
				return err
			})
			require.NoError(t, err)
			require.Equal(t, awslc.NonApprovedMode, ind, "iteration %d", i)
		}
	})

	t.Run("OtherNonApproved", func(t *testing.T) {
		background(t, func() { _, _ = chacha.Seal(nonce, nil, []byte("msg")) })
		for i := 0; i < 2000; i++ {
			ind, err := awslc.CheckServiceIndicator(func() error {
				_, err := digest.Digest(digest.SHA256, []byte("x"))
				return err
			})
			require.NoError(t, err)
			require.Equal(t, awslc.ApprovedMode, ind, "iteration %d", i)
		}
	})
}

func TestIgnoresCallerRandomness(t *testing.T) {
	list := awslc.IgnoresCallerRandomness()
	assert.Contains(t, list, "ed25519.GeneratePKCS8")
	list[0] = "mutated"
	assert.NotContains(t, awslc.IgnoresCallerRandomness(), "mutated")
}

func TestConfigureLoggerAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	m := metrics.New()
	require.NoError(t, awslc.Configure(awslc.Config{
		Logger:  logging.New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		Metrics: m,
	}))
	t.Cleanup(func() { _ = awslc.Configure(awslc.Config{}) })

	_, err := digest.Digest(digest.SHA256, []byte("x"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "awslc configured")

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "awslc_operations_total" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestConfigureRequireFIPS(t *testing.T) {
	require.NoError(t, awslc.Init())
	err := awslc.Configure(awslc.Config{RequireFIPS: true})
	if awslc.FIPSMode() {
		assert.NoError(t, err)
	} else {
		assert.True(t, errors.Is(err, awslc.ErrUnsupported))
	}
	require.NoError(t, awslc.Configure(awslc.Config{}))
}
