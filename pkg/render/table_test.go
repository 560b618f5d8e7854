package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matst80/slask-catalog/pkg/types"
)

func views() []types.ProductView {
	return []types.ProductView{
		{
			Product:       types.Product{Id: 1, Name: "Milk", CategoryId: 2, Price: 129},
			CategoryTitle: "Drinks", CategoryIcon: "🍺", UserName: "Roma", UserSex: "m",
		},
		{
			Product:       types.Product{Id: 9, Name: "Laptop", CategoryId: 4, Price: 899900},
			CategoryTitle: "Electronics", CategoryIcon: "💻", UserName: "Anna", UserSex: "f",
		},
	}
}

func TestTable(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Table(buf, views(), types.SortDescending(types.SortByName)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ID ↕")
	assert.Contains(t, lines[0], "Product ↓")
	assert.Contains(t, lines[0], "Category ↕")
	assert.Contains(t, lines[0], "User ↕")

	assert.True(t, strings.HasPrefix(lines[1], "1 "))
	assert.Contains(t, lines[1], "🍺 Milk")
	assert.Contains(t, lines[1], "Roma ♂")
	assert.Contains(t, lines[1], "1.29")
	assert.Contains(t, lines[2], "Anna ♀")
	assert.Contains(t, lines[2], "8,999.00")
}

func TestEmptyTable(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Table(buf, []types.ProductView{}, types.NoSort()))
	assert.Equal(t, types.NoMatchMessage+"\n", buf.String())
}

func TestSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	state := types.NewFilterState().WithQuery("mi").WithCategories(3, 1).WithUser("Anna").ToggleSort(types.SortById)
	require.NoError(t, Summary(buf, state, 2))
	assert.Equal(t, "2 products, query \"mi\", categories 1,3, user Anna, sorted by id asc\n", buf.String())

	buf.Reset()
	require.NoError(t, Summary(buf, types.NewFilterState(), 12))
	assert.Equal(t, "12 products\n", buf.String())
}
