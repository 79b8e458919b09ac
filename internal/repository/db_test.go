package repository

import "testing"

func TestRebind(t *testing.T) {
	tests := []struct {
		name     string
		postgres bool
		in       string
		want     string
	}{
		{
			"sqlite passes through",
			false,
			"SELECT * FROM records WHERE id = ?",
			"SELECT * FROM records WHERE id = ?",
		},
		{
			"postgres numbers placeholders",
			true,
			"INSERT INTO tags (id, name, group_id) VALUES (?, ?, ?)",
			"INSERT INTO tags (id, name, group_id) VALUES ($1, $2, $3)",
		},
		{
			"postgres without placeholders",
			true,
			"SELECT count(*) FROM records",
			"SELECT count(*) FROM records",
		},
		{
			"double digit placeholders",
			true,
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &DB{postgres: tt.postgres}
			if got := d.rebind(tt.in); got != tt.want {
				t.Errorf("rebind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
