package media

import "context"

// MockClient permite tests sin llamar al backend de media real.
type MockClient struct {
	Asset    Asset
	Err      error
	LastReq  Request
	Requests int
}

func (m *MockClient) Generate(ctx context.Context, req Request) (Asset, error) {
	m.LastReq = req
	m.Requests++
	return m.Asset, m.Err
}
