package backend_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestLibraryInit(t *testing.T) {
	if st := backend.LibraryInit(); !st.OK() {
		t.Fatalf("LibraryInit() = %#x", uint32(st))
	}
	if backend.Version() == "" {
		t.Error("Version() is empty")
	}
}

// TestDigestKnownAnswers checks every digest against the "abc" vectors.
func TestDigestKnownAnswers(t *testing.T) {
	tests := []struct {
		name string
		id   backend.DigestID
		want string
	}{
		{"SHA1", backend.DigestSHA1, "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"SHA224", backend.DigestSHA224, "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"},
		{"SHA256", backend.DigestSHA256, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"SHA384", backend.DigestSHA384, "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
		{"SHA512", backend.DigestSHA512, "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{"SHA512_256", backend.DigestSHA512_256, "53048e2681941ef99b2e29b76b4c7dabe4c2d0c634fc6d46e0e2f13107e7af23"},
		{"SHA3_256", backend.DigestSHA3_256, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		{"SHA3_384", backend.DigestSHA3_384, "ec01498288516fc926459f58e2c6ad8df9b473cb0fc08c2596da7cf0e49be4b298d88cea927ac7f539f1edf228376d25"},
		{"SHA3_512", backend.DigestSHA3_512, "b751850b1a57168a5693cd924b6b096e08f621827444f70d884f5d0240d2712e10e116e9192af3c91a7ec57647e3934057340b4cf408d5a56592f8274eec53f0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := unhex(t, tt.want)
			if got := backend.DigestSize(tt.id); got != len(want) {
				t.Fatalf("DigestSize() = %d, want %d", got, len(want))
			}

			out := make([]byte, len(want))
			if st := backend.DigestOneShot(tt.id, []byte("abc"), out); !st.OK() {
				t.Fatalf("DigestOneShot() status %#x", uint32(st))
			}
			if !bytes.Equal(out, want) {
				t.Errorf("DigestOneShot() = %x, want %x", out, want)
			}

			h, st := backend.DigestNew(tt.id)
			if !st.OK() {
				t.Fatalf("DigestNew() status %#x", uint32(st))
			}
			defer backend.DigestFree(h)
			backend.DigestUpdate(h, []byte("a"))
			c, st := backend.DigestCopy(h)
			if !st.OK() {
				t.Fatalf("DigestCopy() status %#x", uint32(st))
			}
			defer backend.DigestFree(c)
			backend.DigestUpdate(h, []byte("bc"))
			backend.DigestUpdate(c, []byte("bc"))

			got1 := make([]byte, len(want))
			got2 := make([]byte, len(want))
			backend.DigestFinal(h, got1)
			backend.DigestFinal(c, got2)
			if !bytes.Equal(got1, want) || !bytes.Equal(got2, want) {
				t.Errorf("streaming digest = %x / %x, want %x", got1, got2, want)
			}
		})
	}
}

func TestDigestRejects(t *testing.T) {
	if _, st := backend.DigestNew(backend.DigestUnknown); st.OK() {
		t.Error("DigestNew(DigestUnknown) succeeded")
	}
	if st := backend.DigestOneShot(backend.DigestSHA256, nil, make([]byte, 8)); st.OK() {
		t.Error("DigestOneShot() into a short buffer succeeded")
	}
}

func TestHMACKnownAnswer(t *testing.T) {
	key := bytes.Repeat([]byte{0x0b}, 20)
	want := unhex(t, "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7")

	h, st := backend.HMACNew(backend.DigestSHA256, key)
	if !st.OK() {
		t.Fatalf("HMACNew() status %#x", uint32(st))
	}
	defer backend.HMACFree(h)
	backend.HMACUpdate(h, []byte("Hi "))
	c, st := backend.HMACCopy(h)
	if !st.OK() {
		t.Fatalf("HMACCopy() status %#x", uint32(st))
	}
	defer backend.HMACFree(c)
	backend.HMACUpdate(h, []byte("There"))
	backend.HMACUpdate(c, []byte("There"))

	for _, hh := range []backend.Handle{h, c} {
		out := make([]byte, 32)
		if st := backend.HMACFinal(hh, out); !st.OK() {
			t.Fatalf("HMACFinal() status %#x", uint32(st))
		}
		if !bytes.Equal(out, want) {
			t.Errorf("HMACFinal() = %x, want %x", out, want)
		}
	}
}

func TestAEADSealOpen(t *testing.T) {
	// AES-128-GCM with an all-zero key and nonce over an empty message.
	h, st := backend.AEADNew(backend.AEADAES128GCM, make([]byte, 16), 16)
	if !st.OK() {
		t.Fatalf("AEADNew() status %#x", uint32(st))
	}
	defer backend.AEADFree(h)

	nonce := make([]byte, 12)
	out := make([]byte, 16)
	n, st := backend.AEADSeal(h, out, nonce, nil, nil)
	if !st.OK() || n != 16 {
		t.Fatalf("AEADSeal() = %d, %#x", n, uint32(st))
	}
	if want := unhex(t, "58e2fccefa7e3061367f1d57a4e7455a"); !bytes.Equal(out, want) {
		t.Errorf("tag = %x, want %x", out, want)
	}

	msg := []byte("attack at dawn")
	sealed := make([]byte, len(msg)+16)
	n, st = backend.AEADSeal(h, sealed, nonce, msg, []byte("hdr"))
	if !st.OK() || n != len(sealed) {
		t.Fatalf("AEADSeal() = %d, %#x", n, uint32(st))
	}
	plain := make([]byte, len(sealed))
	n, st = backend.AEADOpen(h, plain, nonce, sealed, []byte("hdr"))
	if !st.OK() || !bytes.Equal(plain[:n], msg) {
		t.Fatalf("AEADOpen() = %q, %#x", plain[:n], uint32(st))
	}

	sealed[0] ^= 1
	if _, st = backend.AEADOpen(h, plain, nonce, sealed, []byte("hdr")); st.OK() {
		t.Fatal("AEADOpen() accepted a modified ciphertext")
	}
	if st.Lib() != backend.LibCipher || st.Reason() != backend.CipherBadDecrypt {
		t.Errorf("AEADOpen() status lib=%d reason=%d", st.Lib(), st.Reason())
	}
}

func TestAEADNewRejectsBadKey(t *testing.T) {
	if _, st := backend.AEADNew(backend.AEADAES256GCM, make([]byte, 16), 16); st.OK() {
		t.Error("AEADNew() accepted a 16-byte key for AES-256-GCM")
	}
}

func TestHKDFKnownAnswer(t *testing.T) {
	ikm := bytes.Repeat([]byte{0x0b}, 22)
	salt := unhex(t, "000102030405060708090a0b0c")
	info := unhex(t, "f0f1f2f3f4f5f6f7f8f9")
	want := unhex(t, "3cb25f25faacd57a90434f64d0362f2a2d2d0a90cf1a5a4c5db02d56ecc4c5bf34007208d5b887185865")

	out := make([]byte, len(want))
	if st := backend.HKDF(backend.DigestSHA256, out, ikm, salt, info); !st.OK() {
		t.Fatalf("HKDF() status %#x", uint32(st))
	}
	if !bytes.Equal(out, want) {
		t.Errorf("HKDF() = %x, want %x", out, want)
	}

	prk, st := backend.HKDFExtract(backend.DigestSHA256, ikm, salt)
	if !st.OK() {
		t.Fatalf("HKDFExtract() status %#x", uint32(st))
	}
	out2 := make([]byte, len(want))
	if st := backend.HKDFExpand(backend.DigestSHA256, out2, prk, info); !st.OK() {
		t.Fatalf("HKDFExpand() status %#x", uint32(st))
	}
	if !bytes.Equal(out2, want) {
		t.Errorf("HKDFExpand() = %x, want %x", out2, want)
	}

	if st := backend.HKDF(backend.DigestSHA256, make([]byte, 255*32+1), ikm, salt, info); st.OK() {
		t.Error("HKDF() accepted an oversized output")
	}
}

func TestKBKDFFirstBlock(t *testing.T) {
	secret := []byte("kbkdf secret")
	info := []byte("label")
	out := make([]byte, 40)
	st := backend.KBKDFCtrHMAC(backend.DigestSHA256, out, secret, info)
	if backend.FIPSMode() {
		if st.OK() {
			t.Fatal("KBKDFCtrHMAC() succeeded in a fips build")
		}
		return
	}
	if !st.OK() {
		t.Fatalf("KBKDFCtrHMAC() status %#x", uint32(st))
	}
	want := make([]byte, 0, 64)
	for i := uint32(1); i <= 2; i++ {
		mac := hmac.New(sha256.New, secret)
		binary.Write(mac, binary.BigEndian, i)
		mac.Write(info)
		want = mac.Sum(want)
	}
	if !bytes.Equal(out, want[:40]) {
		t.Errorf("KBKDFCtrHMAC() = %x, want %x", out, want[:40])
	}
}

func TestX25519KnownAnswer(t *testing.T) {
	alice := unhex(t, "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a")
	bobPub := unhex(t, "de9edb7d7b7dc1b4d35b61c2ece435373f8343c85b78674dadfc7e146f882b4f")
	want := unhex(t, "4a5d9d5ba4ce2de1728e3bf480350f25e07e21c947d19e3376f09b3c1e161742")

	h, st := backend.PKeyFromRawPrivate(backend.KeyTypeX25519, backend.CurveUnknown, alice)
	if !st.OK() {
		t.Fatalf("PKeyFromRawPrivate() status %#x", uint32(st))
	}
	defer backend.PKeyFree(h)
	got, st := backend.PKeyDerive(h, bobPub)
	if !st.OK() {
		t.Fatalf("PKeyDerive() status %#x", uint32(st))
	}
	if !bytes.Equal(got, want) {
		t.Errorf("PKeyDerive() = %x, want %x", got, want)
	}
}

func TestEd25519KnownAnswer(t *testing.T) {
	seed := unhex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	pub := unhex(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	sig := unhex(t, "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e06522490155"+
		"5fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b")

	h, st := backend.PKeyFromRawPrivate(backend.KeyTypeEd25519, backend.CurveUnknown, seed)
	if !st.OK() {
		t.Fatalf("PKeyFromRawPrivate() status %#x", uint32(st))
	}
	defer backend.PKeyFree(h)

	gotPub, _ := backend.PKeyRawPublic(h)
	if !bytes.Equal(gotPub, pub) {
		t.Errorf("PKeyRawPublic() = %x, want %x", gotPub, pub)
	}
	gotSig, st := backend.PKeySign(h, backend.DigestUnknown, backend.PaddingNone, nil)
	if !st.OK() || !bytes.Equal(gotSig, sig) {
		t.Errorf("PKeySign() = %x, %#x", gotSig, uint32(st))
	}

	v, st := backend.PKeyFromRawPublic(backend.KeyTypeEd25519, backend.CurveUnknown, pub)
	if !st.OK() {
		t.Fatalf("PKeyFromRawPublic() status %#x", uint32(st))
	}
	defer backend.PKeyFree(v)
	if st := backend.PKeyVerify(v, backend.DigestUnknown, backend.PaddingNone, nil, sig); !st.OK() {
		t.Errorf("PKeyVerify() status %#x", uint32(st))
	}
	if st := backend.PKeyVerify(v, backend.DigestUnknown, backend.PaddingNone, []byte("x"), sig); st.OK() {
		t.Error("PKeyVerify() accepted a signature over another message")
	}
}

func TestEd25519PKCS8(t *testing.T) {
	seed := unhex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	pub := unhex(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	v1 := append(unhex(t, "302e020100300506032b657004220420"), seed...)
	v2 := append(append(append(unhex(t, "3051020101300506032b657004220420"), seed...), unhex(t, "812100")...), pub...)

	for name, der := range map[string][]byte{"v1": v1, "v2": v2} {
		t.Run(name, func(t *testing.T) {
			h, st := backend.PKeyParsePrivate(der)
			if !st.OK() {
				t.Fatalf("PKeyParsePrivate() status %#x", uint32(st))
			}
			defer backend.PKeyFree(h)
			if typ := backend.PKeyType(h); typ != backend.KeyTypeEd25519 {
				t.Errorf("PKeyType() = %d", typ)
			}
			out, st := backend.PKeyMarshalPrivate(h)
			if !st.OK() || !bytes.Equal(out, v1) {
				t.Errorf("PKeyMarshalPrivate() = %x, %#x", out, uint32(st))
			}
		})
	}

	bad := bytes.Clone(v2)
	bad[len(bad)-1] ^= 1
	if h, st := backend.PKeyParsePrivate(bad); st.OK() {
		backend.PKeyFree(h)
		t.Error("PKeyParsePrivate() accepted a v2 key with a mismatched public key")
	}
}

func TestECKeyRoundTrip(t *testing.T) {
	for _, c := range []backend.Curve{backend.CurveP256, backend.CurveP384, backend.CurveP521, backend.CurveSecp256k1} {
		t.Run(c.String(), func(t *testing.T) {
			h, st := backend.PKeyGenerate(backend.KeyTypeEC, c, 0)
			if !st.OK() {
				t.Fatalf("PKeyGenerate() status %#x", uint32(st))
			}
			defer backend.PKeyFree(h)
			if got := backend.PKeyCurve(h); got != c {
				t.Errorf("PKeyCurve() = %v", got)
			}

			msg := []byte("sign me")
			sig, st := backend.PKeySign(h, backend.DigestSHA256, backend.PaddingNone, msg)
			if !st.OK() {
				t.Fatalf("PKeySign() status %#x", uint32(st))
			}

			pub, _ := backend.PKeyRawPublic(h)
			if len(pub) != c.UncompressedPointLen() {
				t.Fatalf("PKeyRawPublic() length %d", len(pub))
			}
			v, st := backend.PKeyFromRawPublic(backend.KeyTypeEC, c, pub)
			if !st.OK() {
				t.Fatalf("PKeyFromRawPublic() status %#x", uint32(st))
			}
			defer backend.PKeyFree(v)
			if st := backend.PKeyVerify(v, backend.DigestSHA256, backend.PaddingNone, msg, sig); !st.OK() {
				t.Errorf("PKeyVerify() status %#x", uint32(st))
			}

			der, st := backend.PKeyMarshalECPrivate(h)
			if !st.OK() {
				t.Fatalf("PKeyMarshalECPrivate() status %#x", uint32(st))
			}
			h2, st := backend.PKeyParseECPrivate(der)
			if !st.OK() {
				t.Fatalf("PKeyParseECPrivate() status %#x", uint32(st))
			}
			defer backend.PKeyFree(h2)
			raw1, _ := backend.PKeyRawPrivate(h)
			raw2, _ := backend.PKeyRawPrivate(h2)
			if len(raw1) != c.ScalarLen() || !bytes.Equal(raw1, raw2) {
				t.Errorf("scalar round trip mismatch")
			}

			pkcs8, st := backend.PKeyMarshalPrivate(h)
			if !st.OK() {
				t.Fatalf("PKeyMarshalPrivate() status %#x", uint32(st))
			}
			h3, st := backend.PKeyParsePrivate(pkcs8)
			if !st.OK() {
				t.Fatalf("PKeyParsePrivate() status %#x", uint32(st))
			}
			backend.PKeyFree(h3)
		})
	}
}

func TestECDHAgrees(t *testing.T) {
	for _, c := range []backend.Curve{backend.CurveP256, backend.CurveP384, backend.CurveSecp256k1} {
		t.Run(c.String(), func(t *testing.T) {
			a, _ := backend.PKeyGenerate(backend.KeyTypeEC, c, 0)
			b, _ := backend.PKeyGenerate(backend.KeyTypeEC, c, 0)
			defer backend.PKeyFree(a)
			defer backend.PKeyFree(b)
			pa, _ := backend.PKeyRawPublic(a)
			pb, _ := backend.PKeyRawPublic(b)
			s1, st1 := backend.PKeyDerive(a, pb)
			s2, st2 := backend.PKeyDerive(b, pa)
			if !st1.OK() || !st2.OK() {
				t.Fatalf("PKeyDerive() status %#x / %#x", uint32(st1), uint32(st2))
			}
			if len(s1) != c.ScalarLen() || !bytes.Equal(s1, s2) {
				t.Errorf("shared secrets differ: %x vs %x", s1, s2)
			}
		})
	}
}

func TestECRejectsOffCurvePoint(t *testing.T) {
	pt := make([]byte, backend.CurveP256.UncompressedPointLen())
	pt[0] = 4
	pt[len(pt)-1] = 1
	if h, st := backend.PKeyFromRawPublic(backend.KeyTypeEC, backend.CurveP256, pt); st.OK() {
		backend.PKeyFree(h)
		t.Error("PKeyFromRawPublic() accepted a point off the curve")
	}
	if h, st := backend.PKeyFromRawPrivate(backend.KeyTypeEC, backend.CurveP256, make([]byte, 32)); st.OK() {
		backend.PKeyFree(h)
		t.Error("PKeyFromRawPrivate() accepted a zero scalar")
	}
}

func TestRSASignVerify(t *testing.T) {
	h, st := backend.PKeyGenerate(backend.KeyTypeRSA, backend.CurveUnknown, 2048)
	if !st.OK() {
		t.Fatalf("PKeyGenerate() status %#x", uint32(st))
	}
	defer backend.PKeyFree(h)
	if bits := backend.PKeyBits(h); bits != 2048 {
		t.Errorf("PKeyBits() = %d", bits)
	}
	pub, st := backend.PKeyRawPublic(h)
	if !st.OK() {
		t.Fatalf("PKeyRawPublic() status %#x", uint32(st))
	}
	v, st := backend.PKeyFromRawPublic(backend.KeyTypeRSA, backend.CurveUnknown, pub)
	if !st.OK() {
		t.Fatalf("PKeyFromRawPublic() status %#x", uint32(st))
	}
	defer backend.PKeyFree(v)

	msg := []byte("rsa message")
	for _, pad := range []backend.Padding{backend.PaddingPKCS1, backend.PaddingPSS} {
		sig, st := backend.PKeySign(h, backend.DigestSHA256, pad, msg)
		if !st.OK() {
			t.Fatalf("PKeySign(pad=%d) status %#x", pad, uint32(st))
		}
		if len(sig) != 256 {
			t.Errorf("signature length %d", len(sig))
		}
		if st := backend.PKeyVerify(v, backend.DigestSHA256, pad, msg, sig); !st.OK() {
			t.Errorf("PKeyVerify(pad=%d) status %#x", pad, uint32(st))
		}
		sig[10] ^= 0xff
		if st := backend.PKeyVerify(v, backend.DigestSHA256, pad, msg, sig); st.OK() {
			t.Errorf("PKeyVerify(pad=%d) accepted a modified signature", pad)
		}
	}

	if _, st := backend.PKeySign(v, backend.DigestSHA256, backend.PaddingPKCS1, msg); st.OK() {
		t.Error("PKeySign() with a public-only key succeeded")
	}
}

func TestDRBGDeterministic(t *testing.T) {
	entropy := bytes.Repeat([]byte{0x42}, backend.DRBGEntropyLen)
	gen := func(pers []byte) []byte {
		h, st := backend.DRBGNew(entropy, pers)
		if !st.OK() {
			t.Fatalf("DRBGNew() status %#x", uint32(st))
		}
		defer backend.DRBGFree(h)
		out := make([]byte, 100)
		if st := backend.DRBGGenerate(h, out, nil); !st.OK() {
			t.Fatalf("DRBGGenerate() status %#x", uint32(st))
		}
		return out
	}

	a, b := gen(nil), gen(nil)
	if !bytes.Equal(a, b) {
		t.Error("same seed produced different output")
	}
	if c := gen([]byte("personal")); bytes.Equal(a, c) {
		t.Error("personalization did not change the output")
	}

	h, _ := backend.DRBGNew(entropy, nil)
	defer backend.DRBGFree(h)
	if st := backend.DRBGGenerate(h, make([]byte, backend.DRBGMaxGenerateLen+1), nil); st.OK() {
		t.Error("DRBGGenerate() accepted an oversized request")
	}
	if _, st := backend.DRBGNew(entropy[:10], nil); st.OK() {
		t.Error("DRBGNew() accepted short entropy")
	}
}

func TestMemCmpAndCleanse(t *testing.T) {
	a := []byte{1, 2, 3}
	if backend.MemCmp(a, []byte{1, 2, 3}) != 0 {
		t.Error("MemCmp() of equal slices is non-zero")
	}
	if backend.MemCmp(a, []byte{1, 2, 4}) == 0 {
		t.Error("MemCmp() of different slices is zero")
	}
	backend.Cleanse(a)
	if !bytes.Equal(a, make([]byte, 3)) {
		t.Errorf("Cleanse() left %x", a)
	}
}

func TestAESEncryptBlock(t *testing.T) {
	// FIPS-197 appendix C.1.
	key := unhex(t, "000102030405060708090a0b0c0d0e0f")
	var block [16]byte
	copy(block[:], unhex(t, "00112233445566778899aabbccddeeff"))
	if st := backend.AESEncryptBlock(key, &block); !st.OK() {
		t.Fatalf("AESEncryptBlock() status %#x", uint32(st))
	}
	if want := unhex(t, "69c4e0d86a7b0430d8cdb78070b4c55a"); !bytes.Equal(block[:], want) {
		t.Errorf("AESEncryptBlock() = %x, want %x", block, want)
	}
	if st := backend.AESEncryptBlock(key[:5], &block); st.OK() {
		t.Error("AESEncryptBlock() accepted a 5-byte key")
	}
}
