package schema

import (
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeSource is an in-memory SchemaSource for registry tests.
type fakeSource struct {
	files   map[string]string
	order   []string
	listErr error
	failOn  map[string]bool
}

func (s *fakeSource) ListSchemaFiles() ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.order, nil
}

func (s *fakeSource) ReadSchemaFile(path string) (string, error) {
	if s.failOn[path] {
		return "", fmt.Errorf("unreadable: %s", path)
	}
	return s.files[path], nil
}

func TestRegistryIngest(t *testing.T) {
	reg := NewRegistry(quietLogger())
	reg.Ingest("greeter.proto", `
package demo;
import "other.proto";

service Greeter {
  rpc SayHello(HelloRequest) returns (HelloReply) {}
}
message HelloRequest { string name = 1; }
message HelloReply { string message = 1; }
`)

	assert.Equal(t, "demo", reg.Packages["greeter.proto"])
	assert.Equal(t, []string{"other.proto"}, reg.Imports["greeter.proto"])
	assert.Contains(t, reg.Services, "Greeter")
	assert.Contains(t, reg.Messages, "HelloRequest")
	assert.Contains(t, reg.Messages, "HelloReply")
	assert.Equal(t, []string{"Greeter"}, reg.ServiceNames())
}

func TestRegistryLastWriteWins(t *testing.T) {
	reg := NewRegistry(quietLogger())
	reg.Ingest("a.proto", `message Thing { string first = 1; }`)
	reg.Ingest("b.proto", `message Thing { string second = 1; }`)

	msg := reg.Messages["Thing"]
	require.NotNil(t, msg)
	assert.Equal(t, "b.proto", msg.SourceFile)
	require.Len(t, msg.Fields, 1)
	assert.Equal(t, "second", msg.Fields[0].Name)
}

func TestRegistryIngestSourceContinuesOnFailure(t *testing.T) {
	src := &fakeSource{
		files: map[string]string{
			"bad.proto":  "",
			"good.proto": `package demo; message Kept { string id = 1; }`,
		},
		order:  []string{"bad.proto", "good.proto"},
		failOn: map[string]bool{"bad.proto": true},
	}

	reg := NewRegistry(quietLogger())
	require.NoError(t, reg.IngestSource(src))
	assert.Contains(t, reg.Messages, "Kept")
}

// fakeObserver records ingestion callbacks for assertions.
type fakeObserver struct {
	parsed   []bool
	services int
	methods  int
	messages int
	enums    int
}

func (o *fakeObserver) SchemaFileParsed(ok bool) {
	o.parsed = append(o.parsed, ok)
}

func (o *fakeObserver) SchemaEntities(services, methods, messages, enums int) {
	o.services, o.methods, o.messages, o.enums = services, methods, messages, enums
}

func TestRegistryIngestSourceReportsToObserver(t *testing.T) {
	src := &fakeSource{
		files: map[string]string{
			"bad.proto": "",
			"good.proto": `
package demo;
service Greeter { rpc SayHello(HelloRequest) returns (HelloReply) {} }
message HelloRequest { string name = 1; }
message HelloReply { string message = 1; }
enum Mood { MOOD_UNSPECIFIED = 0; }
`,
		},
		order:  []string{"bad.proto", "good.proto"},
		failOn: map[string]bool{"bad.proto": true},
	}

	obs := &fakeObserver{}
	reg := NewRegistry(quietLogger())
	reg.SetObserver(obs)
	reg.SeedBuiltins()
	require.NoError(t, reg.IngestSource(src))

	assert.Equal(t, []bool{false, true}, obs.parsed)
	assert.Equal(t, 1, obs.services)
	assert.Equal(t, 1, obs.methods)
	// Builtins register under two keys each; counts dedupe by entity, so the
	// four seeded messages plus the two ingested ones make six.
	assert.Equal(t, 6, obs.messages)
	assert.Equal(t, 1, obs.enums)
}

func TestRegistryIngestSourceListFailure(t *testing.T) {
	src := &fakeSource{listErr: fmt.Errorf("no such directory")}
	reg := NewRegistry(quietLogger())
	assert.Error(t, reg.IngestSource(src))
}

func TestSeedBuiltinsSharedOwnership(t *testing.T) {
	reg := NewRegistry(quietLogger())
	reg.SeedBuiltins()

	for simple, qualified := range map[string]string{
		"Timestamp": "google.protobuf.Timestamp",
		"Duration":  "google.protobuf.Duration",
		"Any":       "google.protobuf.Any",
		"Payload":   "spoke.common.v1.Payload",
	} {
		bySimple := reg.Messages[simple]
		byQualified := reg.Messages[qualified]
		require.NotNil(t, bySimple, simple)
		// Both keys must reference the identical entity, never a copy.
		assert.Same(t, bySimple, byQualified, simple)
	}

	assert.Equal(t, "google.protobuf", reg.Packages["google/protobuf/timestamp.proto"])
	assert.Equal(t, "spoke.common.v1", reg.Packages["spoke/common/v1/payload.proto"])
}

func TestSeedBuiltinsOrderIndependent(t *testing.T) {
	content := `package demo; message Job { string id = 1; }`

	before := NewRegistry(quietLogger())
	before.SeedBuiltins()
	before.Ingest("job.proto", content)
	before.Qualify()

	after := NewRegistry(quietLogger())
	after.Ingest("job.proto", content)
	after.SeedBuiltins()
	after.Qualify()

	assert.Equal(t, before.Packages, after.Packages)
	for _, key := range []string{"Job", "demo.Job", "Timestamp", "google.protobuf.Timestamp"} {
		assert.NotNil(t, before.Messages[key], key)
		assert.NotNil(t, after.Messages[key], key)
	}
}

func TestQualifyAliasesSameEntity(t *testing.T) {
	reg := NewRegistry(quietLogger())
	reg.Ingest("job.proto", `
package batch.v1;
message Job { string id = 1; }
enum JobState { JOB_STATE_UNSPECIFIED = 0; }
`)
	reg.Qualify()

	assert.Same(t, reg.Messages["Job"], reg.Messages["batch.v1.Job"])
	assert.Same(t, reg.Enums["JobState"], reg.Enums["batch.v1.JobState"])
}

func TestQualifyIdempotent(t *testing.T) {
	reg := NewRegistry(quietLogger())
	reg.Ingest("job.proto", `package batch.v1; message Job { string id = 1; }`)
	reg.SeedBuiltins()
	reg.Qualify()

	messageKeys := make([]string, 0, len(reg.Messages))
	for key := range reg.Messages {
		messageKeys = append(messageKeys, key)
	}

	reg.Qualify()

	assert.Len(t, reg.Messages, len(messageKeys))
	for _, key := range messageKeys {
		assert.Contains(t, reg.Messages, key)
	}
}

func TestFilterService(t *testing.T) {
	reg := NewRegistry(quietLogger())
	reg.Ingest("a.proto", `service Alpha { rpc A(X) returns (Y) {} }`)
	reg.Ingest("b.proto", `service Beta { rpc B(X) returns (Y) {} }`)

	filtered, err := reg.FilterService("Beta")
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta"}, filtered.ServiceNames())
	assert.Len(t, filtered.Services, 1)

	// The original registry is untouched.
	assert.Equal(t, []string{"Alpha", "Beta"}, reg.ServiceNames())

	_, err = reg.FilterService("Gamma")
	assert.Error(t, err)
}
