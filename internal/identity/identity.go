package identity

// Provider tags for the supported identity providers.
const (
	ProviderFirebase = "firebase"
	ProviderKakao    = "kakao"
)

// Identity represents a normalized external identity returned by a provider
// client. It contains verified facts only; no local user resolution happens
// here.
type Identity struct {
	// Provider is the provider tag (firebase or kakao).
	Provider string
	// UID is the provider-native unique account id.
	UID string
	// Email as asserted by the provider. May be empty.
	Email string
	// Name is the display name or nickname. May be empty.
	Name string
	// Picture is an avatar URL, when the provider supplies one.
	Picture string
}

// ExternalUID returns the provider-qualified external identity key used as
// the local join key: the bare uid for Firebase (historic format), or
// "kakao:<uid>" for Kakao.
func (i Identity) ExternalUID() string {
	if i.Provider == ProviderKakao {
		return "kakao:" + i.UID
	}

	return i.UID
}
