package bind_group_provider

// BufferWrite describes a queued write of Data into the buffer at Binding on Provider, starting at Offset bytes.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// NewBufferWrite builds a BufferWrite at offset 0.
//
// Parameters:
//   - provider: the provider owning the buffer
//   - binding: the binding index of the buffer
//   - data: the bytes to write
//
// Returns:
//   - BufferWrite: the write
func NewBufferWrite(provider BindGroupProvider, binding int, data []byte) BufferWrite {
	return BufferWrite{Provider: provider, Binding: binding, Data: data}
}
