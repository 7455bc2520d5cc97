package output

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/jezweb/better-chat-trigger/internal/conversation"
	"github.com/jezweb/better-chat-trigger/internal/domain"
)

func testConfig(format domain.OutputFormat) domain.ChatConfig {
	return domain.ChatConfig{
		Path:           "chat",
		Mode:           domain.ModeHostedChat,
		Authentication: domain.AuthNone,
		AllowedOrigins: "*",
		OutputFormat:   format,
		Features: domain.FeatureSet{
			domain.FeatureMarkdown,
			domain.FeatureCopy,
			domain.FeatureTimestamps,
		},
		InitialMessage: domain.DefaultInitialMessage,
		Style:          domain.Style{Theme: "auto", MaxHeight: "90vh"},
	}
}

func testAssembly(t *testing.T, cfg domain.ChatConfig, body string) *conversation.Assembly {
	t.Helper()
	a := conversation.NewAssembler(cfg.Features, nil)
	return a.Assemble([]byte(body))
}

func TestEnvelope_AIAgent(t *testing.T) {
	cfg := testConfig(domain.OutputAIAgent)
	f := NewFormatter(cfg)

	asm := testAssembly(t, cfg, `{"message":"hello","session_id":"session_s1","thread_id":"thread_t1"}`)
	env := f.Envelope(asm, RequestInfo{ChatURL: "http://localhost:8080/chat"})

	if env["chatInput"] != "hello" {
		t.Errorf("chatInput = %v, want hello", env["chatInput"])
	}
	if env["sessionId"] != "session_s1" {
		t.Errorf("sessionId = %v", env["sessionId"])
	}
	if env["threadId"] != "thread_t1" {
		t.Errorf("threadId = %v", env["threadId"])
	}
	if env["messageCount"] != 1 {
		t.Errorf("messageCount = %v, want 1", env["messageCount"])
	}
	if env["timestamp"] == "" {
		t.Error("timestamp missing")
	}
	if env["chatUrl"] != "http://localhost:8080/chat" {
		t.Errorf("chatUrl = %v", env["chatUrl"])
	}
	if !strings.HasPrefix(env["_chatAccess"].(string), "Open chat: ") {
		t.Errorf("_chatAccess = %v", env["_chatAccess"])
	}

	// detailed-only fields stay out of the compact envelope
	for _, key := range []string{"userMessage", "context", "raw", "features"} {
		if _, present := env[key]; present {
			t.Errorf("%s present in aiAgent envelope", key)
		}
	}
}

func TestEnvelope_BraceEscaping(t *testing.T) {
	cfg := testConfig(domain.OutputAIAgent)
	f := NewFormatter(cfg)

	asm := testAssembly(t, cfg, `{"message":"use {this} syntax"}`)
	env := f.Envelope(asm, RequestInfo{})

	if env["chatInput"] != "use {{this}} syntax" {
		t.Errorf("chatInput = %v, want doubled braces", env["chatInput"])
	}
	messages := env["messages"].([]any)
	last := messages[len(messages)-1].(map[string]any)
	if last["content"] != "use {{this}} syntax" {
		t.Errorf("message content = %v, want doubled braces", last["content"])
	}
}

func TestEnvelope_Detailed(t *testing.T) {
	cfg := testConfig(domain.OutputDetailed)
	f := NewFormatter(cfg)

	asm := testAssembly(t, cfg, `{"message":"hello","messages":[{"role":"user","content":"earlier"}]}`)

	headers := http.Header{}
	headers.Set("User-Agent", "test-agent")
	headers.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	query := url.Values{}
	query.Set("debug", "1")

	env := f.Envelope(asm, RequestInfo{Headers: headers, Query: query})

	if env["userMessage"] != "hello" {
		t.Errorf("userMessage = %v", env["userMessage"])
	}
	if env["chatMode"] != "hostedChat" {
		t.Errorf("chatMode = %v", env["chatMode"])
	}
	if env["authentication"] != "none" {
		t.Errorf("authentication = %v", env["authentication"])
	}
	if env["theme"] != "auto" {
		t.Errorf("theme = %v", env["theme"])
	}

	ctx := env["context"].(map[string]any)
	if ctx["conversation_length"] != 1 {
		t.Errorf("conversation_length = %v, want 1 (priors only)", ctx["conversation_length"])
	}
	if ctx["user_agent"] != "test-agent" {
		t.Errorf("user_agent = %v", ctx["user_agent"])
	}
	if ctx["ip_address"] != "203.0.113.7" {
		t.Errorf("ip_address = %v, want first forwarded hop", ctx["ip_address"])
	}
	if est, ok := ctx["token_estimate"].(int); !ok || est <= 0 {
		t.Errorf("token_estimate = %v, want positive int", ctx["token_estimate"])
	}

	raw := env["raw"].(map[string]any)
	rawHeaders := raw["headers"].(map[string]any)
	if rawHeaders["user-agent"] != "test-agent" {
		t.Errorf("raw headers = %v, want lowercased keys", rawHeaders)
	}
	rawQuery := raw["query"].(map[string]any)
	if rawQuery["debug"] != "1" {
		t.Errorf("raw query = %v", rawQuery)
	}
}

func TestEnvelope_Attachments(t *testing.T) {
	cfg := testConfig(domain.OutputAIAgent)
	f := NewFormatter(cfg)

	asm := testAssembly(t, cfg, `{"message":"hi"}`)
	asm.Context.Attachments = []domain.BinaryAttachment{
		{Key: "data0", Name: "a.txt", MimeType: "text/plain", Data: []byte("x")},
		{Key: "data1", Name: "b.png", MimeType: "image/png", Data: []byte("yy")},
	}

	env := f.Envelope(asm, RequestInfo{})
	if env["hasFiles"] != true {
		t.Error("hasFiles missing")
	}
	if env["fileCount"] != 2 {
		t.Errorf("fileCount = %v", env["fileCount"])
	}
	names := env["fileNames"].([]any)
	if names[0] != "a.txt" || names[1] != "b.png" {
		t.Errorf("fileNames = %v", names)
	}
	keys := env["binaryPropertyNames"].([]any)
	if keys[0] != "data0" || keys[1] != "data1" {
		t.Errorf("binaryPropertyNames = %v", keys)
	}
}

func TestEnvelope_NoAttachmentFieldsWithoutFiles(t *testing.T) {
	cfg := testConfig(domain.OutputAIAgent)
	f := NewFormatter(cfg)

	asm := testAssembly(t, cfg, `{"message":"hi"}`)
	env := f.Envelope(asm, RequestInfo{})

	for _, key := range []string{"hasFiles", "fileCount", "fileNames", "binaryPropertyNames"} {
		if _, present := env[key]; present {
			t.Errorf("%s present without attachments", key)
		}
	}
}

func TestBinarySidecar(t *testing.T) {
	attachments := []domain.BinaryAttachment{
		{Key: "data0", Name: "a.txt", MimeType: "text/plain", Data: []byte("hello")},
	}
	sidecar := BinarySidecar(attachments)

	entry := sidecar["data0"].(map[string]any)
	if entry["data"] != "aGVsbG8=" {
		t.Errorf("data = %v, want base64 of hello", entry["data"])
	}
	if entry["fileName"] != "a.txt" {
		t.Errorf("fileName = %v", entry["fileName"])
	}
	if entry["mimeType"] != "text/plain" {
		t.Errorf("mimeType = %v", entry["mimeType"])
	}
	if entry["fileSize"] != 5 {
		t.Errorf("fileSize = %v, want decoded length", entry["fileSize"])
	}
}
