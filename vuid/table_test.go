package vuid

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func vuidFields(v *DrawDispatchVuids) map[string]string {
	fields := make(map[string]string)
	value := reflect.ValueOf(v).Elem()
	for i := 0; i < value.NumField(); i++ {
		fields[value.Type().Field(i).Name] = value.Field(i).String()
	}
	return fields
}

func TestEveryKindIsTotal(t *testing.T) {
	for _, kind := range AllCommandKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			v := Get(kind)
			require.NotNil(t, v)

			for name, value := range vuidFields(v) {
				require.NotEmpty(t, value, name)
				if value != Undefined {
					require.True(t, strings.HasPrefix(value, "VUID-"+kind.Function()+"-"), "%s: %s", name, value)
				}
			}
		})
	}
}

func TestUnknownKindIsUndefined(t *testing.T) {
	for _, kind := range []CommandKind{CommandNone, commandKindCount, commandKindCount + 7, -3} {
		v := Get(kind)
		for name, value := range vuidFields(v) {
			require.Equal(t, Undefined, value, name)
		}
	}
}

func TestRulesCoverEveryField(t *testing.T) {
	// A field no rule writes would be left as an empty string
	v := undefinedVuids()
	for name, value := range vuidFields(v) {
		require.Equal(t, Undefined, value, name)
	}
}

var selectedVuidTestCases = map[string]struct {
	Kind     CommandKind
	Field    func(v *DrawDispatchVuids) string
	Expected string
}{
	"Draw Pipeline Bound": {
		Kind:     CommandDraw,
		Field:    func(v *DrawDispatchVuids) string { return v.PipelineBound08606 },
		Expected: "VUID-vkCmdDraw-None-08606",
	},
	"Dispatch Has No Index Binding": {
		Kind:     CommandDispatch,
		Field:    func(v *DrawDispatchVuids) string { return v.IndexBinding07312 },
		Expected: Undefined,
	},
	"DrawIndexed Index Binding": {
		Kind:     CommandDrawIndexed,
		Field:    func(v *DrawDispatchVuids) string { return v.IndexBinding07312 },
		Expected: "VUID-vkCmdDrawIndexed-None-07312",
	},
	"Mesh EXT Missing Mesh Stage": {
		Kind:     CommandDrawMeshTasksEXT,
		Field:    func(v *DrawDispatchVuids) string { return v.MissingMeshShaderStages07080 },
		Expected: "VUID-vkCmdDrawMeshTasksEXT-MeshEXT-07087",
	},
	"Mesh Draw Has No Classic Stage Rule": {
		Kind:     CommandDrawMeshTasksNV,
		Field:    func(v *DrawDispatchVuids) string { return v.InvalidMeshShaderStages06481 },
		Expected: Undefined,
	},
	"Indirect Count Offset": {
		Kind:     CommandDrawIndexedIndirectCount,
		Field:    func(v *DrawDispatchVuids) string { return v.IndirectCountOffset04129 },
		Expected: "VUID-vkCmdDrawIndexedIndirectCount-countBufferOffset-04129",
	},
	"Trace Rays Dynamic State Unused": {
		Kind:     CommandTraceRaysKHR,
		Field:    func(v *DrawDispatchVuids) string { return v.DynamicViewport07831 },
		Expected: Undefined,
	},
	"Dispatch Base Group Y": {
		Kind:     CommandDispatchBase,
		Field:    func(v *DrawDispatchVuids) string { return v.BaseGroupY },
		Expected: "VUID-vkCmdDispatchBase-baseGroupY-00422",
	},
	"Instanced Multiview": {
		Kind:     CommandDrawMultiEXT,
		Field:    func(v *DrawDispatchVuids) string { return v.MaxMultiviewInstanceIndex02688 },
		Expected: "VUID-vkCmdDrawMultiEXT-maxMultiviewInstanceIndex-02688",
	},
}

func TestSelectedVuids(t *testing.T) {
	for testName, testCase := range selectedVuidTestCases {
		t.Run(testName, func(t *testing.T) {
			require.Equal(t, testCase.Expected, testCase.Field(Get(testCase.Kind)))
		})
	}
}

func TestGetIsShared(t *testing.T) {
	require.Same(t, Get(CommandDraw), Get(CommandDraw))
	require.Same(t, Get(CommandNone), Get(commandKindCount))
}

func TestCommandClasses(t *testing.T) {
	require.True(t, CommandDrawIndexedIndirectCount.Is(ClassIndexed))
	require.True(t, CommandDrawIndexedIndirectCount.Is(ClassIndirectCount))
	require.False(t, CommandDraw.Is(ClassIndirect))
	require.True(t, CommandDrawClusterHUAWEI.Is(ClassGraphics))
	require.False(t, CommandDispatch.Is(ClassGraphics))
	require.Equal(t, CommandClass(0), CommandNone.Classes())
	require.Len(t, AllCommandKinds(), 24)
}
