package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jezweb/better-chat-trigger/internal/domain"
)

// pageConfig is the subset of the configuration the client script needs.
type pageConfig struct {
	Features         []string `json:"features"`
	Theme            string   `json:"theme"`
	EnableAnimations bool     `json:"enableAnimations"`
}

// writeClientScript emits the page script: an in-memory message list scoped
// to the page lifetime, a JSON POST to the same URL, and client-side
// rendering of the response.
func writeClientScript(b *strings.Builder, cfg domain.ChatConfig) {
	cfgJSON, _ := json.Marshal(pageConfig{
		Features:         cfg.Features.Names(),
		Theme:            cfg.Style.Theme,
		EnableAnimations: cfg.Style.EnableAnimations,
	})
	initialMessage, _ := json.Marshal(cfg.InitialMessage)

	fmt.Fprintf(b, "var chatConfig = %s;\n", cfgJSON)
	b.WriteString("var selectedFiles = [];\n")
	b.WriteString("var conversation = [];\n\n")

	fmt.Fprintf(b, `document.addEventListener('DOMContentLoaded', function() {
	addMessage('system', %s, new Date().toISOString());
	var input = document.getElementById('messageInput');
	input.focus();
	input.addEventListener('keypress', function(e) {
		if (e.key === 'Enter') sendMessage();
	});
	document.getElementById('sendButton').addEventListener('click', sendMessage);
	var fileButton = document.getElementById('fileButton');
	if (fileButton) {
		fileButton.addEventListener('click', function() {
			document.getElementById('fileInput').click();
		});
		document.getElementById('fileInput').addEventListener('change', handleFileSelect);
	}
});
`, initialMessage)

	b.WriteString(`
function addMessage(role, content, timestamp) {
	conversation.push({ role: role, content: content, timestamp: timestamp });
	var messagesDiv = document.getElementById('messages');
	var messageDiv = document.createElement('div');
	messageDiv.className = 'message ' + role;

	if (chatConfig.features.indexOf('markdown') !== -1 && typeof marked !== 'undefined') {
		var wrapper = document.createElement('div');
		wrapper.className = 'markdown';
		wrapper.innerHTML = marked.parse(content);
		messageDiv.appendChild(wrapper);
	} else {
		messageDiv.textContent = content;
	}

	if (chatConfig.features.indexOf('timestamps') !== -1 && timestamp) {
		var timestampDiv = document.createElement('div');
		timestampDiv.className = 'message-timestamp';
		timestampDiv.textContent = new Date(timestamp).toLocaleTimeString();
		messageDiv.appendChild(timestampDiv);
	}

	if (chatConfig.features.indexOf('copy') !== -1) {
		var actionsDiv = document.createElement('div');
		actionsDiv.className = 'message-actions';
		var copyBtn = document.createElement('button');
		copyBtn.className = 'action-btn copy-btn';
		copyBtn.textContent = 'Copy';
		copyBtn.addEventListener('click', function() {
			navigator.clipboard.writeText(content);
		});
		actionsDiv.appendChild(copyBtn);
		messageDiv.appendChild(actionsDiv);
	}

	messagesDiv.appendChild(messageDiv);
	messagesDiv.scrollTop = messagesDiv.scrollHeight;

	if (chatConfig.features.indexOf('codeHighlight') !== -1 && typeof Prism !== 'undefined') {
		Prism.highlightAllUnder(messageDiv);
	}
}

async function sendMessage() {
	var input = document.getElementById('messageInput');
	var message = input.value.trim();
	if (!message && selectedFiles.length === 0) return;

	var sendButton = document.getElementById('sendButton');
	sendButton.disabled = true;

	if (message) {
		addMessage('user', message, new Date().toISOString());
	}
	if (selectedFiles.length > 0) {
		addMessage('system', selectedFiles.length + ' file(s) attached', new Date().toISOString());
	}

	var payload = {
		message: message,
		messages: conversation.slice(0, -1),
		files: selectedFiles
	};
	input.value = '';
	clearFiles();

	try {
		var response = await fetch(window.location.href, {
			method: 'POST',
			headers: { 'Content-Type': 'application/json' },
			body: JSON.stringify(payload)
		});
		if (response.ok) {
			var result = await response.text();
			addMessage('assistant', result, new Date().toISOString());
		} else {
			addMessage('system', 'Error: failed to send message', new Date().toISOString());
		}
	} catch (err) {
		addMessage('system', 'Error: connection failed', new Date().toISOString());
	} finally {
		sendButton.disabled = false;
		input.focus();
	}
}

function handleFileSelect(event) {
	var files = Array.prototype.slice.call(event.target.files);
	files.forEach(function(file) {
		var reader = new FileReader();
		reader.onload = function(e) {
			var base64 = e.target.result.split(',')[1];
			selectedFiles.push({ name: file.name, type: file.type, size: file.size, data: base64 });
			updateFileIndicator();
		};
		reader.readAsDataURL(file);
	});
}

function updateFileIndicator() {
	var indicator = document.getElementById('fileIndicator');
	if (!indicator) return;
	if (selectedFiles.length > 0) {
		indicator.textContent = selectedFiles.length;
		indicator.classList.add('show');
	} else {
		indicator.classList.remove('show');
	}
}

function clearFiles() {
	selectedFiles = [];
	updateFileIndicator();
	var fileInput = document.getElementById('fileInput');
	if (fileInput) fileInput.value = '';
}
`)
}
