package docs

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/protodoc/pkg/schema"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// ingestAll builds a qualified registry from (path, content) pairs in order.
func ingestAll(t *testing.T, files [][2]string) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry(quietLogger())
	reg.SeedBuiltins()
	for _, file := range files {
		reg.Ingest(file[0], file[1])
	}
	reg.Qualify()
	return reg
}

func TestCollectReferencedTypesExcludesPrimaryPackage(t *testing.T) {
	reg := ingestAll(t, [][2]string{
		{"svc/service.proto", `
package svc.v1;

service Inventory {
  rpc GetItem(GetItemRequest) returns (GetItemResponse) {}
}

message GetItemRequest {
  string item_id = 1;
}

message GetItemResponse {
  LocalDetail detail = 1;
  ext.v1.Widget widget = 2;
}

message LocalDetail {
  string note = 1;
}
`},
		{"ext/widget.proto", `
package ext.v1;

message Widget {
  string label = 1;
}
`},
	})

	graph := CollectReferencedTypes(reg)

	typ, ok := graph.Lookup("ext.v1.Widget")
	require.True(t, ok, "external type should be collected")
	assert.Equal(t, "ext.v1", typ.Package)
	require.NotNil(t, typ.Message)
	assert.Equal(t, "Widget", typ.Message.Name)

	_, ok = graph.Lookup("LocalDetail")
	assert.False(t, ok, "types from the service's own package stay out of the appendix")
}

func TestCollectReferencedTypesRelevanceFilter(t *testing.T) {
	reg := ingestAll(t, [][2]string{
		{"svc/service.proto", `
package svc.v1;

service Jobs {
  rpc Describe(DescribeRequest) returns (DescribeResponse) {}
}

message DescribeRequest {
  string job_id = 1;
}

message DescribeResponse {
  ext.v1.Status status = 1;
  ext.v1.Widget widget = 2;
  google.protobuf.Timestamp created_at = 3;
  google.protobuf.StringValue alias = 4;
}
`},
		{"ext/types.proto", `
package ext.v1;

message Status {
  string code = 1;
}

message Widget {
  string label = 1;
}
`},
	})

	graph := CollectReferencedTypes(reg)

	_, ok := graph.Lookup("ext.v1.Status")
	assert.False(t, ok, "generically-named types are filtered")

	_, ok = graph.Lookup("ext.v1.Widget")
	assert.True(t, ok)

	ts, ok := graph.Lookup("google.protobuf.Timestamp")
	require.True(t, ok, "Timestamp is on the well-known allow-list")
	assert.Equal(t, "google.protobuf", ts.Package)

	_, ok = graph.Lookup("google.protobuf.StringValue")
	assert.False(t, ok, "wrapper types outside the allow-list are excluded")
}

func TestCollectReferencedTypesDepthBound(t *testing.T) {
	reg := ingestAll(t, [][2]string{
		{"svc/service.proto", `
package svc.v1;

service Chains {
  rpc Get(GetRequest) returns (GetResponse) {}
}

message GetRequest {
  string chain_id = 1;
}

message GetResponse {
  ext.v1.Alpha alpha = 1;
}
`},
		{"ext/chain.proto", `
package ext.v1;

message Alpha {
  ext.v1.Bravo bravo = 1;
}

message Bravo {
  ext.v1.Charlie charlie = 1;
}

message Charlie {
  ext.v1.Delta delta = 1;
}

message Delta {
  ext.v1.Alpha alpha = 1;
}
`},
	})

	graph := CollectReferencedTypes(reg)

	for _, name := range []string{"ext.v1.Alpha", "ext.v1.Bravo", "ext.v1.Charlie"} {
		_, ok := graph.Lookup(name)
		assert.True(t, ok, "expected %s within the depth bound", name)
	}
	_, ok := graph.Lookup("ext.v1.Delta")
	assert.False(t, ok, "traversal must stop after two levels past the seed")
}

func TestCollectReferencedTypesCycleTerminates(t *testing.T) {
	reg := ingestAll(t, [][2]string{
		{"svc/service.proto", `
package svc.v1;

service Loops {
  rpc Get(GetRequest) returns (GetResponse) {}
}

message GetRequest {
  string loop_id = 1;
}

message GetResponse {
  ext.v1.Node node = 1;
}
`},
		{"ext/node.proto", `
package ext.v1;

message Node {
  ext.v1.Edge edge = 1;
}

message Edge {
  ext.v1.Node node = 1;
}
`},
	})

	// The A references B, B references A cycle must terminate via the
	// ancestor visited set.
	graph := CollectReferencedTypes(reg)

	_, ok := graph.Lookup("ext.v1.Node")
	assert.True(t, ok)
	_, ok = graph.Lookup("ext.v1.Edge")
	assert.True(t, ok)
	assert.Equal(t, 2, graph.Len())
}

func TestCollectReferencedTypesSiblingsNotSuppressed(t *testing.T) {
	reg := ingestAll(t, [][2]string{
		{"svc/service.proto", `
package svc.v1;

service Pairs {
  rpc Get(GetRequest) returns (GetResponse) {}
}

message GetRequest {
  string pair_id = 1;
}

message GetResponse {
  ext.v1.Left left = 1;
  ext.v1.Right right = 2;
}
`},
		{"ext/pair.proto", `
package ext.v1;

message Left {
  ext.v1.Shared shared = 1;
}

message Right {
  ext.v1.Shared shared = 1;
}

message Shared {
  string value = 1;
}
`},
	})

	graph := CollectReferencedTypes(reg)

	for _, name := range []string{"ext.v1.Left", "ext.v1.Right", "ext.v1.Shared"} {
		_, ok := graph.Lookup(name)
		assert.True(t, ok, "expected %s", name)
	}
}

func TestCollectReferencedTypesSkipsDeprecatedFields(t *testing.T) {
	reg := ingestAll(t, [][2]string{
		{"svc/service.proto", `
package svc.v1;

service Relics {
  rpc Get(GetRequest) returns (GetResponse) {}
}

message GetRequest {
  string relic_id = 1;
}

message GetResponse {
  ext.v1.Widget old_widget = 1 [deprecated = true];
  string note = 2;
}
`},
		{"ext/widget.proto", `
package ext.v1;

message Widget {
  string label = 1;
}
`},
	})

	graph := CollectReferencedTypes(reg)
	assert.Equal(t, 0, graph.Len())
}

func TestCollectReferencedTypesEnums(t *testing.T) {
	reg := ingestAll(t, [][2]string{
		{"svc/service.proto", `
package svc.v1;

service Tiers {
  rpc Get(GetRequest) returns (GetResponse) {}
}

message GetRequest {
  string tier_id = 1;
}

message GetResponse {
  ext.v1.TierLevel level = 1;
}
`},
		{"ext/tier.proto", `
package ext.v1;

enum TierLevel {
  TIER_LEVEL_UNSPECIFIED = 0;
  TIER_LEVEL_GOLD = 1;
}
`},
	})

	graph := CollectReferencedTypes(reg)

	typ, ok := graph.Lookup("ext.v1.TierLevel")
	require.True(t, ok)
	require.NotNil(t, typ.Enum)
	assert.Nil(t, typ.Message)
	assert.Equal(t, "TierLevel", typ.Enum.Name)
}

func TestReferenceGraphOrderIsFirstSeen(t *testing.T) {
	graph := newReferenceGraph()
	graph.add(&ReferencedType{Name: "b.v1.Second"})
	graph.add(&ReferencedType{Name: "a.v1.First"})
	graph.add(&ReferencedType{Name: "b.v1.Second"})

	assert.Equal(t, []string{"b.v1.Second", "a.v1.First"}, graph.Names())
	assert.Equal(t, 2, graph.Len())
}
