package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogsFailure(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	ctx := context.WithValue(context.Background(), RequestIDKey, "abc-123")

	func() (err error) {
		defer Time(ctx, "shops.List")(&err)
		return errors.New("boom")
	}()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "shops.List", entry.Data["op"])
	assert.Equal(t, "abc-123", entry.Data["req_id"])
}

func TestRequestIDMissing(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}
