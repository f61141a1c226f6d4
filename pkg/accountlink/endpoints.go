package accountlink

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the production root of the Kaleron account link API.
const DefaultBaseURL = "https://krio.fr.nf/API/V1"

// Endpoint identifies one remote route of the account link API.
type Endpoint int

const (
	Info Endpoint = iota
	RemoveLink
	GetEmail
	SendComment
	ReadComments
	Like
	Dislike
)

var endpointPaths = [...]string{
	Info:         "/GetAccountLinkInfo",
	RemoveLink:   "/RemoveAccountLink",
	GetEmail:     "/AccountLinks/GetEmail",
	SendComment:  "/AccountLinks/SendComment",
	ReadComments: "/AccountLinks/ReadComments",
	Like:         "/AccountLinks/Like",
	Dislike:      "/AccountLinks/Dislike",
}

var endpointNames = [...]string{
	Info:         "info",
	RemoveLink:   "removeLink",
	GetEmail:     "getEmail",
	SendComment:  "sendComment",
	ReadComments: "readComments",
	Like:         "like",
	Dislike:      "dislike",
}

// AllEndpoints lists every endpoint in declaration order.
func AllEndpoints() []Endpoint {
	return []Endpoint{Info, RemoveLink, GetEmail, SendComment, ReadComments, Like, Dislike}
}

// String returns the logical operation name (ex: "getEmail").
func (e Endpoint) String() string {
	if e < 0 || int(e) >= len(endpointNames) {
		return fmt.Sprintf("Endpoint(%d)", int(e))
	}
	return endpointNames[e]
}

// Path returns the route of e relative to the API base URL.
func (e Endpoint) Path() string {
	if e < 0 || int(e) >= len(endpointPaths) {
		return ""
	}
	return endpointPaths[e]
}

// Endpoints resolves endpoints against a base URL.
// The zero value resolves against DefaultBaseURL.
type Endpoints struct {
	BaseURL string `yaml:"base_url" validate:"required,url"`
}

// DefaultEndpoints returns the production endpoint set.
func DefaultEndpoints() Endpoints {
	return Endpoints{BaseURL: DefaultBaseURL}
}

// URL returns the full URL template of e, without query parameters.
func (es Endpoints) URL(e Endpoint) string {
	base := es.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + e.Path()
}

// LoadEndpoints reads an endpoint override file:
//
//	base_url: http://localhost:8088/API/V1
func LoadEndpoints(path string) (Endpoints, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Endpoints{}, fmt.Errorf("failed to read endpoints file: %w", err)
	}

	var es Endpoints
	if err := yaml.Unmarshal(data, &es); err != nil {
		return Endpoints{}, fmt.Errorf("failed to parse endpoints yaml: %w", err)
	}

	if err := validator.New().Struct(es); err != nil {
		return Endpoints{}, fmt.Errorf("invalid endpoints file %s: %w", path, err)
	}

	return es, nil
}
