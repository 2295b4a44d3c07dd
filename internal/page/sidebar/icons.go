package sidebar

const (
	hamburgerIcon = `<line x1="3" y1="6" x2="21" y2="6"></line>` +
		`<line x1="3" y1="12" x2="21" y2="12"></line>` +
		`<line x1="3" y1="18" x2="21" y2="18"></line>`
	closeIcon = `<line x1="18" y1="6" x2="6" y2="18"></line>` +
		`<line x1="6" y1="6" x2="18" y2="18"></line>`
)
