package common

import (
	"github.com/urfave/cli/v2"

	"github.com/campusmetrics/cataloglens/pkg/db"
)

// OpenDatabase opens the store at --db when set, otherwise the default
// location next to the binary.
func OpenDatabase(c *cli.Context) (*db.DB, error) {
	if path := c.String("db"); path != "" {
		return db.OpenAt(path)
	}
	return db.Open()
}
