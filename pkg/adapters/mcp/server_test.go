package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/vitrine/pkg/catalog"
	"github.com/aretw0/vitrine/pkg/domain"
	"github.com/aretw0/vitrine/pkg/site"
)

type downCatalog struct{}

func (downCatalog) Products(context.Context) ([]domain.Product, error) {
	return nil, domain.ErrCatalogUnavailable
}

func newServer(t *testing.T) *Server {
	t.Helper()
	st, err := site.Default()
	require.NoError(t, err)
	cat, err := catalog.Default()
	require.NoError(t, err)
	return NewServer(st, cat, "test")
}

func TestListProducts(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	resp, err := s.handleListProducts(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	require.NoError(t, err)
	assert.Len(t, resp.Products, 3)

	resp, err = s.handleListProducts(ctx, mcp.CallToolRequest{}, map[string]interface{}{"model": float64(3)})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "five-die", resp.Products[0].ID)

	_, err = s.handleListProducts(ctx, mcp.CallToolRequest{}, map[string]interface{}{"model": float64(7)})
	assert.Error(t, err)

	s.catalog = downCatalog{}
	_, err = s.handleListProducts(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	assert.True(t, errors.Is(err, domain.ErrCatalogUnavailable))
}

func TestDialogueStep(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		args     map[string]interface{}
		wantNode string
		wantHref string
		wantErr  error
	}{
		{name: "root by default", args: map[string]interface{}{}, wantNode: "root"},
		{name: "unknown node is root", args: map[string]interface{}{"node_id": "nowhere"}, wantNode: "root"},
		{name: "transition", args: map[string]interface{}{"node_id": "root", "option": float64(2)}, wantNode: "buy-process"},
		{
			name:     "effect stays on node",
			args:     map[string]interface{}{"node_id": "buy-process", "option": float64(0)},
			wantNode: "buy-process",
			wantHref: "https://forms.gle/LQwMAdZdsjA54Ytn8",
		},
		{
			name:     "navigate effect",
			args:     map[string]interface{}{"node_id": "machine-models", "option": float64(1)},
			wantNode: "machine-models",
			wantHref: "/products?model=2",
		},
		{name: "bad option", args: map[string]interface{}{"option": float64(12)}, wantErr: domain.ErrUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.handleDialogueStep(ctx, mcp.CallToolRequest{}, tt.args)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNode, resp.Node.ID)
			assert.Equal(t, tt.wantHref, resp.Href)
			assert.False(t, resp.Fallback)
		})
	}
}

func TestFindServiceCenter(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()
	centers := s.site.Locator().Centers()

	resp, err := s.handleFindServiceCenter(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	require.NoError(t, err)
	assert.Nil(t, resp.Selected)
	assert.Equal(t, site.OverviewZoom, resp.View.Zoom)

	resp, err = s.handleFindServiceCenter(ctx, mcp.CallToolRequest{}, map[string]interface{}{"city": strings.ToLower(centers[2].City)})
	require.NoError(t, err)
	require.NotNil(t, resp.Selected)
	assert.Equal(t, centers[2].City, resp.Selected.City)
	assert.Equal(t, site.SelectedZoom, resp.View.Zoom)
}

func TestJSONResource(t *testing.T) {
	contents, err := jsonResource("vitrine://faqs", []domain.FAQ{{Question: "Q", Answer: "A"}})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", text.MIMEType)
	assert.JSONEq(t, `[{"question":"Q","answer":"A"}]`, text.Text)
}
