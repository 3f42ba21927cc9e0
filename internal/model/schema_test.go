package model

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm/schema"
)

func mysqlColumnType(t *testing.T, dest interface{}, column string) string {
	t.Helper()
	s, err := schema.Parse(dest, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	field := s.LookUpField(column)
	require.NotNil(t, field, column)
	return mysql.Dialector{Config: &mysql.Config{}}.DataTypeOf(field)
}

func TestReactionEmojiComparesBytes(t *testing.T) {
	got := mysqlColumnType(t, &Reaction{}, "emoji")
	assert.Equal(t, "varchar(64) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin", got)
}

func TestTimestampsKeepMicroseconds(t *testing.T) {
	cases := []struct {
		name   string
		dest   interface{}
		column string
	}{
		{"message created", &Message{}, "created_at"},
		{"message updated", &Message{}, "updated_at"},
		{"direct message created", &DirectMessage{}, "created_at"},
		{"direct message updated", &DirectMessage{}, "updated_at"},
		{"reaction created", &Reaction{}, "created_at"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(mysqlColumnType(t, tc.dest, tc.column), "datetime(6)"))
		})
	}
}
