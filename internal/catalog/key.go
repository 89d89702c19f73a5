package catalog

// Key identifies community data for a (variant, workflow, toolchain) triple.
// An empty field means the record is not scoped on that axis.
type Key struct {
	VariantID string
	Workflow  string
	Toolchain string
}

// WorkflowOnly drops the toolchain axis; best templates fall back to it.
func (k Key) WorkflowOnly() Key {
	return Key{VariantID: k.VariantID, Workflow: k.Workflow}
}

// Complete reports whether all three axes are set.
func (k Key) Complete() bool {
	return k.VariantID != "" && k.Workflow != "" && k.Toolchain != ""
}
