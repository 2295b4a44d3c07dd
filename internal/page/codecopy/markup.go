package codecopy

const (
	buttonClass  = "code-copy-button"
	wrapperClass = "code-block-wrapper"
	labelClass   = "code-language-label"
	successClass = "copy-success"
	errorClass   = "copy-error"

	idleText    = "Copy"
	successText = "Copied!"
	errorText   = "Failed"

	buttonLabel = "Copy code to clipboard"

	buttonHTML = `<svg class="copy-icon" width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">` +
		`<rect x="9" y="9" width="13" height="13" rx="2" ry="2"></rect>` +
		`<path d="M5 15H4a2 2 0 01-2-2V4a2 2 0 012-2h9a2 2 0 012 2v1"></path>` +
		`</svg>` +
		`<svg class="check-icon" width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" style="display: none">` +
		`<polyline points="20,6 9,17 4,12"></polyline>` +
		`</svg>` +
		`<span class="copy-text">Copy</span>`
)
