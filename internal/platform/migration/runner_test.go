// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkwell/internal/platform/migration"
)

/*
TestDatabaseURL maps postgres schemes onto pgx5 and leaves others alone.
*/
func TestDatabaseURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/inkwell":   "pgx5://u:p@db:5432/inkwell",
		"postgresql://u:p@db:5432/inkwell": "pgx5://u:p@db:5432/inkwell",
		"pgx5://u:p@db:5432/inkwell":       "pgx5://u:p@db:5432/inkwell",
		"host=db dbname=inkwell":           "host=db dbname=inkwell",
	}

	for input, want := range tests {
		assert.Equal(t, want, migration.DatabaseURL(input), input)
	}
}
