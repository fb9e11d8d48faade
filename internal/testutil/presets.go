package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WithStandardUsers adds the standard five-user dataset.
func (b *Builder) WithStandardUsers() *Builder {
	return b.
		WithUser(1, "Taro Tanaka", Age(28), Email("tanaka@example.com"), Department("Sales")).
		WithUser(2, "Hanako Suzuki", Age(34), Email("suzuki@example.com"), Department("Engineering")).
		WithUser(3, "Ichiro Sato", Age(45), Email("sato@example.com"), Department("HR")).
		WithUser(4, "Misaki Takahashi", Age(29), Email("takahashi@example.com"), Department("Engineering")).
		WithUser(5, "Kenta Yamada", Age(38), Email("yamada@example.com"), Department("Sales"))
}

// StandardUsersCSV is the standard dataset as CSV.
const StandardUsersCSV = `id,name,age,email,department
1,Taro Tanaka,28,tanaka@example.com,Sales
2,Hanako Suzuki,34,suzuki@example.com,Engineering
3,Ichiro Sato,45,sato@example.com,HR
4,Misaki Takahashi,29,takahashi@example.com,Engineering
5,Kenta Yamada,38,yamada@example.com,Sales
`

// StandardUsersYAML is the standard dataset as YAML.
const StandardUsersYAML = `- id: 1
  name: Taro Tanaka
  age: 28
  email: tanaka@example.com
  department: Sales
- id: 2
  name: Hanako Suzuki
  age: 34
  email: suzuki@example.com
  department: Engineering
- id: 3
  name: Ichiro Sato
  age: 45
  email: sato@example.com
  department: HR
- id: 4
  name: Misaki Takahashi
  age: 29
  email: takahashi@example.com
  department: Engineering
- id: 5
  name: Kenta Yamada
  age: 38
  email: yamada@example.com
  department: Sales
`

// WriteFile writes content to name inside a temporary directory and
// returns the path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
