package awslc

// ignoresCallerRandomness names the operations that accept a randomness
// source and draw from the engine instead.
var ignoresCallerRandomness = []string{
	"agreement.GenerateEphemeral",
	"ecdsa.KeyPair.Sign",
	"ed25519.GeneratePKCS8",
	"rsa.KeyPair.Sign",
}

// IgnoresCallerRandomness lists, by package-qualified name, every operation
// whose randomness argument is accepted for API compatibility but not used.
// Their output does not depend on the supplied source.
func IgnoresCallerRandomness() []string {
	return append([]string(nil), ignoresCallerRandomness...)
}
