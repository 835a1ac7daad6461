package wot

import "github.com/urmzd/sdfwot/pkg/dataschema"

// Security scheme names
const (
	SchemeNoSec  = "nosec"
	SchemeBasic  = "basic"
	SchemeDigest = "digest"
	SchemeBearer = "bearer"
	SchemePSK    = "psk"
	SchemeOAuth2 = "oauth2"
	SchemeAPIKey = "apikey"
)

// NoSecName is the securityDefinitions key used for the nosec scheme.
const NoSecName = "nosec_sc"

// SecurityScheme is a named security configuration. Scheme selects which
// of the optional members apply.
type SecurityScheme struct {
	Scheme        string                        `json:"scheme"`
	SemanticType  *dataschema.OneOrMany[string] `json:"@type,omitempty"`
	Description   *string                       `json:"description,omitempty"`
	Descriptions  map[string]string             `json:"descriptions,omitempty"`
	Proxy         *string                       `json:"proxy,omitempty"`
	In            *string                       `json:"in,omitempty"`
	Name          *string                       `json:"name,omitempty"`
	QoP           *string                       `json:"qop,omitempty"`
	Authorization *string                       `json:"authorization,omitempty"`
	Alg           *string                       `json:"alg,omitempty"`
	Format        *string                       `json:"format,omitempty"`
	Identity      *string                       `json:"identity,omitempty"`
	Token         *string                       `json:"token,omitempty"`
	Refresh       *string                       `json:"refresh,omitempty"`
	Scopes        *dataschema.OneOrMany[string] `json:"scopes,omitempty"`
	Flow          *string                       `json:"flow,omitempty"`
}

// NoSecurity returns the security and securityDefinitions members of a
// Thing that requires no authentication.
func NoSecurity() (dataschema.OneOrMany[string], map[string]*SecurityScheme) {
	return dataschema.One(NoSecName), map[string]*SecurityScheme{
		NoSecName: {Scheme: SchemeNoSec},
	}
}
