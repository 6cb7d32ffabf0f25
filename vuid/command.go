package vuid

import "github.com/vkngwrapper/core/v2/common"

// CommandKind identifies one draw, dispatch, trace rays, or mesh command entry point. The same validity
// rule carries a different VUID for each of these commands.
type CommandKind int32

const (
	// CommandNone is the sentinel kind. Looking it up returns a record where every VUID is Undefined.
	CommandNone CommandKind = iota
	CommandDraw
	CommandDrawIndexed
	CommandDrawIndirect
	CommandDrawIndexedIndirect
	CommandDrawIndirectCount
	CommandDrawIndexedIndirectCount
	CommandDrawMultiEXT
	CommandDrawMultiIndexedEXT
	CommandDrawIndirectByteCountEXT
	CommandDrawMeshTasksNV
	CommandDrawMeshTasksIndirectNV
	CommandDrawMeshTasksIndirectCountNV
	CommandDrawMeshTasksEXT
	CommandDrawMeshTasksIndirectEXT
	CommandDrawMeshTasksIndirectCountEXT
	CommandDispatch
	CommandDispatchBase
	CommandDispatchIndirect
	CommandTraceRaysNV
	CommandTraceRaysKHR
	CommandTraceRaysIndirectKHR
	CommandTraceRaysIndirect2KHR
	CommandDrawClusterHUAWEI
	CommandDrawClusterIndirectHUAWEI

	commandKindCount
)

// CommandClass describes which families of rules apply to a command
type CommandClass uint32

var commandClassMapping = common.NewFlagStringMapping[CommandClass]()

func (c CommandClass) Register(str string) {
	commandClassMapping.Register(c, str)
}
func (c CommandClass) String() string {
	return commandClassMapping.FlagsToString(c)
}

const (
	// ClassDraw marks classic vertex-pipeline draws
	ClassDraw CommandClass = 1 << iota
	// ClassMesh marks task/mesh draws
	ClassMesh
	// ClassCluster marks cluster culling draws
	ClassCluster
	ClassDispatch
	ClassTraceRays
	// ClassIndexed marks draws that read the bound index buffer
	ClassIndexed
	// ClassIndirect marks commands that read their parameters from a buffer or device address
	ClassIndirect
	// ClassIndirectCount marks commands that read their draw count from a count buffer
	ClassIndirectCount
	// ClassInstanced marks direct draws carrying an explicit instanceCount and firstInstance
	ClassInstanced
	ClassMulti
	ClassTransformFeedback

	// ClassGraphics is every command that executes against the graphics bind point
	ClassGraphics = ClassDraw | ClassMesh | ClassCluster
	// ClassAll matches every command kind
	ClassAll = ClassGraphics | ClassDispatch | ClassTraceRays
)

func init() {
	ClassDraw.Register("Draw")
	ClassMesh.Register("Mesh")
	ClassCluster.Register("Cluster")
	ClassDispatch.Register("Dispatch")
	ClassTraceRays.Register("TraceRays")
	ClassIndexed.Register("Indexed")
	ClassIndirect.Register("Indirect")
	ClassIndirectCount.Register("IndirectCount")
	ClassInstanced.Register("Instanced")
	ClassMulti.Register("Multi")
	ClassTransformFeedback.Register("TransformFeedback")
}

type commandInfo struct {
	function string
	classes  CommandClass
}

var commandInfos = [commandKindCount]commandInfo{
	CommandNone:                          {function: "", classes: 0},
	CommandDraw:                          {function: "vkCmdDraw", classes: ClassDraw | ClassInstanced},
	CommandDrawIndexed:                   {function: "vkCmdDrawIndexed", classes: ClassDraw | ClassIndexed | ClassInstanced},
	CommandDrawIndirect:                  {function: "vkCmdDrawIndirect", classes: ClassDraw | ClassIndirect},
	CommandDrawIndexedIndirect:           {function: "vkCmdDrawIndexedIndirect", classes: ClassDraw | ClassIndexed | ClassIndirect},
	CommandDrawIndirectCount:             {function: "vkCmdDrawIndirectCount", classes: ClassDraw | ClassIndirect | ClassIndirectCount},
	CommandDrawIndexedIndirectCount:      {function: "vkCmdDrawIndexedIndirectCount", classes: ClassDraw | ClassIndexed | ClassIndirect | ClassIndirectCount},
	CommandDrawMultiEXT:                  {function: "vkCmdDrawMultiEXT", classes: ClassDraw | ClassInstanced | ClassMulti},
	CommandDrawMultiIndexedEXT:           {function: "vkCmdDrawMultiIndexedEXT", classes: ClassDraw | ClassIndexed | ClassInstanced | ClassMulti},
	CommandDrawIndirectByteCountEXT:      {function: "vkCmdDrawIndirectByteCountEXT", classes: ClassDraw | ClassInstanced | ClassTransformFeedback},
	CommandDrawMeshTasksNV:               {function: "vkCmdDrawMeshTasksNV", classes: ClassMesh},
	CommandDrawMeshTasksIndirectNV:       {function: "vkCmdDrawMeshTasksIndirectNV", classes: ClassMesh | ClassIndirect},
	CommandDrawMeshTasksIndirectCountNV:  {function: "vkCmdDrawMeshTasksIndirectCountNV", classes: ClassMesh | ClassIndirect | ClassIndirectCount},
	CommandDrawMeshTasksEXT:              {function: "vkCmdDrawMeshTasksEXT", classes: ClassMesh},
	CommandDrawMeshTasksIndirectEXT:      {function: "vkCmdDrawMeshTasksIndirectEXT", classes: ClassMesh | ClassIndirect},
	CommandDrawMeshTasksIndirectCountEXT: {function: "vkCmdDrawMeshTasksIndirectCountEXT", classes: ClassMesh | ClassIndirect | ClassIndirectCount},
	CommandDispatch:                      {function: "vkCmdDispatch", classes: ClassDispatch},
	CommandDispatchBase:                  {function: "vkCmdDispatchBase", classes: ClassDispatch},
	CommandDispatchIndirect:              {function: "vkCmdDispatchIndirect", classes: ClassDispatch | ClassIndirect},
	CommandTraceRaysNV:                   {function: "vkCmdTraceRaysNV", classes: ClassTraceRays},
	CommandTraceRaysKHR:                  {function: "vkCmdTraceRaysKHR", classes: ClassTraceRays},
	CommandTraceRaysIndirectKHR:          {function: "vkCmdTraceRaysIndirectKHR", classes: ClassTraceRays | ClassIndirect},
	CommandTraceRaysIndirect2KHR:         {function: "vkCmdTraceRaysIndirect2KHR", classes: ClassTraceRays | ClassIndirect},
	CommandDrawClusterHUAWEI:             {function: "vkCmdDrawClusterHUAWEI", classes: ClassCluster},
	CommandDrawClusterIndirectHUAWEI:     {function: "vkCmdDrawClusterIndirectHUAWEI", classes: ClassCluster | ClassIndirect},
}

// IsValid reports whether the kind is a member of the closed enumeration, excluding CommandNone
func (k CommandKind) IsValid() bool {
	return k > CommandNone && k < commandKindCount
}

// Function returns the Vulkan entry point name for this command, or an empty string for unknown kinds
func (k CommandKind) Function() string {
	if !k.IsValid() {
		return ""
	}
	return commandInfos[k].function
}

func (k CommandKind) String() string {
	if !k.IsValid() {
		return "CommandNone"
	}
	return commandInfos[k].function
}

// Classes returns the rule families that apply to this command
func (k CommandKind) Classes() CommandClass {
	if !k.IsValid() {
		return 0
	}
	return commandInfos[k].classes
}

func (k CommandKind) Is(class CommandClass) bool {
	return k.Classes()&class != 0
}

// AllCommandKinds returns every valid command kind in declaration order
func AllCommandKinds() []CommandKind {
	kinds := make([]CommandKind, 0, commandKindCount-1)
	for k := CommandNone + 1; k < commandKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
