package element

// typeByClass maps well-known Swing and SWT component class names (simple
// names, without the package) to the toolkit-agnostic element type a
// locator can use instead of a concrete class name, so "Button" finds a
// javax.swing.JButton and an org.eclipse.swt.widgets.Button alike.
var typeByClass = map[string]string{
	// Swing
	"JButton":             "Button",
	"JToggleButton":       "Button",
	"JCheckBox":           "CheckBox",
	"JCheckBoxMenuItem":   "MenuItem",
	"JRadioButton":        "CheckBox",
	"JTextField":          "TextField",
	"JPasswordField":      "TextField",
	"JFormattedTextField": "TextField",
	"JTextArea":           "TextField",
	"JTextPane":           "TextField",
	"JEditorPane":         "Editor",
	"JTable":              "Table",
	"JTree":               "Tree",
	"JLabel":              "Label",
	"JComboBox":           "ComboBox",
	"JList":               "List",
	"JPanel":              "Panel",
	"JFrame":              "Frame",
	"JDialog":             "Dialog",
	"JWindow":             "Frame",
	"JMenu":               "Menu",
	"JMenuBar":            "Menu",
	"JMenuItem":           "MenuItem",
	"JPopupMenu":          "PopupMenu",
	"JToolBar":            "ToolBar",
	"JProgressBar":        "ProgressBar",
	"JSlider":             "Slider",
	"JSpinner":            "Spinner",
	"JTabbedPane":         "TabbedPane",
	"JSplitPane":          "SplitPane",
	"JScrollPane":         "ScrollPane",

	// SWT / RCP
	"Button":            "Button",
	"Text":              "TextField",
	"StyledText":        "TextField",
	"Table":             "Table",
	"Tree":              "Tree",
	"Label":             "Label",
	"CLabel":            "Label",
	"Combo":             "ComboBox",
	"CCombo":            "ComboBox",
	"List":              "List",
	"Composite":         "Panel",
	"Group":             "Panel",
	"Shell":             "Shell",
	"Menu":              "Menu",
	"MenuItem":          "MenuItem",
	"ToolBar":           "ToolBar",
	"ProgressBar":       "ProgressBar",
	"Scale":             "Slider",
	"Slider":            "Slider",
	"Spinner":           "Spinner",
	"TabFolder":         "TabFolder",
	"CTabFolder":        "TabFolder",
	"SashForm":          "SplitPane",
	"ScrolledComposite": "ScrollPane",
	"ViewPart":          "View",
	"EditorPart":        "Editor",
	"Perspective":       "Perspective",
}

// TypeOf returns the normalised element type for a component class's
// simple name, or "Unknown" for a class not in the taxonomy.
func TypeOf(simpleName string) string {
	if t, ok := typeByClass[simpleName]; ok {
		return t
	}
	return "Unknown"
}
