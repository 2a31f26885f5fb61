package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToColumns(t *testing.T) {
	require := require.New(t)

	recs := []*Record{
		FromPairs("seqid", int64(1), "log_code", int64(100000), "atime", "2025-12-03 16:44:02"),
		FromPairs("seqid", int64(139025), "log_code", int64(100215), "atime", "2025-12-19 16:36:19"),
		FromPairs("seqid", int64(139026), "log_code", int64(100213), "atime", "2025-12-19 16:36:20"),
	}

	cols, err := ToColumns(recs)
	require.NoError(err)
	require.Equal(3, cols.Rows())
	require.Equal([]string{"seqid", "log_code", "atime"}, cols.Names())
	require.Equal([]any{int64(1), int64(139025), int64(139026)}, cols.Column("seqid"))
	require.Equal([]any{"2025-12-03 16:44:02", "2025-12-19 16:36:19", "2025-12-19 16:36:20"}, cols.Column("atime"))
	require.Nil(cols.Column("missing"))

	b, err := json.Marshal(cols)
	require.NoError(err)
	require.JSONEq(`{
		"seqid": [1, 139025, 139026],
		"log_code": [100000, 100215, 100213],
		"atime": ["2025-12-03 16:44:02", "2025-12-19 16:36:19", "2025-12-19 16:36:20"]
	}`, string(b))
}

func TestToColumns_Empty(t *testing.T) {
	require := require.New(t)

	cols, err := ToColumns(nil)
	require.NoError(err)
	require.Zero(cols.Rows())
	require.Empty(cols.Names())
	require.Empty(cols.Map())

	b, err := json.Marshal(cols)
	require.NoError(err)
	require.Equal(`{}`, string(b))
}

func TestToColumns_FieldMismatch(t *testing.T) {
	require := require.New(t)

	_, err := ToColumns([]*Record{
		FromPairs("a", int64(1), "b", int64(2)),
		FromPairs("b", int64(2)),
	})
	require.ErrorIs(err, ErrDecode)
	require.ErrorIs(err, ErrFieldMismatch)

	_, err = ToColumns([]*Record{
		FromPairs("a", int64(1), "b", int64(2)),
		FromPairs("a", int64(1), "c", int64(2)),
	})
	require.ErrorIs(err, ErrFieldMismatch)
}

func TestToColumns_FieldOrderMayDiffer(t *testing.T) {
	require := require.New(t)

	cols, err := ToColumns([]*Record{
		FromPairs("a", int64(1), "b", int64(2)),
		FromPairs("b", int64(4), "a", int64(3)),
	})
	require.NoError(err)
	require.Equal([]any{int64(1), int64(3)}, cols.Column("a"))
	require.Equal([]any{int64(2), int64(4)}, cols.Column("b"))
}
