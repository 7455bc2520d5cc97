package domain

// Mode selects how users reach the chat.
type Mode string

const (
	// ModeWebhookOnly exposes the bare webhook for custom integrations.
	ModeWebhookOnly Mode = "webhookOnly"
	// ModeHostedChat serves the complete chat page from the trigger itself.
	ModeHostedChat Mode = "hostedChat"
	// ModeEmbedded is for an external page embedding a chat widget that
	// calls the webhook directly.
	ModeEmbedded Mode = "embedded"
)

// OutputFormat selects the response envelope shape.
type OutputFormat string

const (
	OutputAIAgent  OutputFormat = "aiAgent"
	OutputDetailed OutputFormat = "detailed"
)

// AuthMode selects the authentication scheme.
type AuthMode string

const (
	AuthNone  AuthMode = "none"
	AuthBasic AuthMode = "basicAuth"
)

// Feature is a chat capability toggle.
type Feature string

const (
	FeatureMarkdown      Feature = "markdown"
	FeatureCodeHighlight Feature = "codeHighlight"
	FeatureCopy          Feature = "copy"
	FeatureTimestamps    Feature = "timestamps"
	FeatureRegenerate    Feature = "regenerate"
	FeatureFileUpload    Feature = "fileUpload"
	FeatureVoiceInput    Feature = "voiceInput"
	FeatureExportChat    Feature = "exportChat"
	FeaturePinMessages   Feature = "pinMessages"
	FeatureSearch        Feature = "search"
)

// FeatureSet is an ordered collection of enabled features. Order is
// preserved so configuration echoes are stable.
type FeatureSet []Feature

// Has reports whether f is enabled.
func (fs FeatureSet) Has(f Feature) bool {
	for _, v := range fs {
		if v == f {
			return true
		}
	}
	return false
}

// Names returns the feature values as plain strings.
func (fs FeatureSet) Names() []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = string(f)
	}
	return names
}

// FilePolicy decides what happens when an uploaded file fails validation or
// decoding: skip it and continue, or fail the whole request.
type FilePolicy string

const (
	FilePolicySkip   FilePolicy = "skip"
	FilePolicyStrict FilePolicy = "strict"
)

// DefaultPath is the webhook path a trigger listens on when the
// configuration does not name one.
const DefaultPath = "chat"

// DefaultInitialMessage is the welcome message shown when the hosted chat
// page loads.
const DefaultInitialMessage = "Hi! How can I help you today?"

// FileRules constrains uploaded attachments.
type FileRules struct {
	// AllowedTypes is a comma-separated list of extensions or MIME type
	// fragments; "*" or empty allows everything.
	AllowedTypes string
	// MaxSizeMB caps the decoded size of a single file; 0 disables the check.
	MaxSizeMB int
	Policy    FilePolicy
}

// Style holds every visual knob of the hosted interface.
type Style struct {
	Theme                 string
	Width                 string
	MaxWidth              string
	MinWidth              string
	Height                string
	MaxHeight             string
	BorderRadius          string
	BoxShadow             string
	BorderStyle           string
	Padding               string
	Margin                string
	FontFamily            string
	FontSize              string
	LineHeight            string
	CompactMode           bool
	EnableAnimations      bool
	AnimationSpeed        string
	PrimaryColor          string
	BackgroundColor       string
	ContainerBackground   string
	UserMessageColor      string
	AssistantMessageColor string
	TextColor             string
}

// ChatConfig is the immutable snapshot of one trigger's configurable
// behavior. It is resolved once at configuration load and never mutated
// while serving requests.
type ChatConfig struct {
	Path           string
	Mode           Mode
	Public         bool
	Authentication AuthMode
	AllowedOrigins string
	OutputFormat   OutputFormat
	Features       FeatureSet
	InitialMessage string
	Files          FileRules
	Style          Style
}
