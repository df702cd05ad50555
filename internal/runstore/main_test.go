package runstore

import (
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pcarver/featweight/test/testutil"
)

func TestMain(m *testing.M) {
	testutil.InitTestLogger()
	testutil.SetLogLevel(testutil.ParseLogLevel(zerolog.WarnLevel))
	os.Exit(m.Run())
}
