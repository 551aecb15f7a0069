package shader

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	structBlockRegex   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	locationRegex      = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRegex       = regexp.MustCompile(`@builtin\(\w+\)`)
	fieldRegex         = regexp.MustCompile(`^\s*(?:@\w+\([^)]*\)\s*)*(\w+)\s*:\s*(.+?)\s*$`)
	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
	blockCommentRegex  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRegex   = regexp.MustCompile(`//[^\n]*`)
)

type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

var wgslVertexFormatMap = map[string]vertexFormatInfo{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
	"i32":       {wgpu.VertexFormatSint32, 4},
}

// typeLayout is the host-shareable size and alignment of a WGSL type.
type typeLayout struct {
	size, align uint64
}

var wgslTypeLayoutMap = map[string]typeLayout{
	"f32":         {4, 4},
	"u32":         {4, 4},
	"i32":         {4, 4},
	"vec2f":       {8, 8},
	"vec2<f32>":   {8, 8},
	"vec3f":       {12, 16},
	"vec3<f32>":   {12, 16},
	"vec4f":       {16, 16},
	"vec4<f32>":   {16, 16},
	"mat3x3f":     {48, 16},
	"mat3x3<f32>": {48, 16},
	"mat4x4f":     {64, 16},
	"mat4x4<f32>": {64, 16},
}

var wgslTextureDimensionMap = map[string]wgpu.TextureViewDimension{
	"texture_2d":       wgpu.TextureViewDimension2D,
	"texture_2d_array": wgpu.TextureViewDimension2DArray,
	"texture_cube":     wgpu.TextureViewDimensionCube,
	"texture_3d":       wgpu.TextureViewDimension3D,
}

var wgslSampleTypeMap = map[string]wgpu.TextureSampleType{
	"f32": wgpu.TextureSampleTypeFloat,
	"i32": wgpu.TextureSampleTypeSint,
	"u32": wgpu.TextureSampleTypeUint,
}

type parsedField struct {
	name     string
	typeName string
	location int
	builtin  bool
}

type parsedStruct struct {
	name   string
	fields []parsedField
}

func stripComments(source string) string {
	return lineCommentRegex.ReplaceAllString(blockCommentRegex.ReplaceAllString(source, ""), "")
}

// parseEntryPoint returns the name of the first function tagged with the stage attribute for shaderType.
//
// Parameters:
//   - source: WGSL source with comments stripped
//   - shaderType: the stage to look for
//
// Returns:
//   - string: the entry point name, empty if the stage is absent
func parseEntryPoint(source string, shaderType ShaderType) string {
	var re *regexp.Regexp
	switch shaderType {
	case ShaderTypeVertex:
		re = vertexEntryRegex
	case ShaderTypeFragment:
		re = fragmentEntryRegex
	default:
		return ""
	}
	if match := re.FindStringSubmatch(source); match != nil {
		return match[1]
	}
	return ""
}

func parseStructBlocks(source string) []parsedStruct {
	var result []parsedStruct
	for _, match := range structBlockRegex.FindAllStringSubmatch(source, -1) {
		ps := parsedStruct{name: match[1]}
		for _, raw := range strings.Split(match[2], ",") {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			fm := fieldRegex.FindStringSubmatch(raw)
			if fm == nil {
				continue
			}
			field := parsedField{name: fm[1], typeName: fm[2], location: -1}
			if lm := locationRegex.FindStringSubmatch(raw); lm != nil {
				field.location, _ = strconv.Atoi(lm[1])
			}
			field.builtin = builtinRegex.MatchString(raw)
			ps.fields = append(ps.fields, field)
		}
		result = append(result, ps)
	}
	return result
}

// computeStructLayouts resolves the size and alignment of every struct, in declaration order so
// earlier structs can be nested in later ones.
func computeStructLayouts(structs []parsedStruct) map[string]typeLayout {
	layouts := make(map[string]typeLayout, len(structs))
	for _, ps := range structs {
		var offset, align uint64 = 0, 1
		ok := true
		for _, f := range ps.fields {
			fl, found := resolveTypeLayout(f.typeName, layouts)
			if !found {
				ok = false
				break
			}
			offset = roundUp(offset, fl.align) + fl.size
			align = max(align, fl.align)
		}
		if ok {
			layouts[ps.name] = typeLayout{size: roundUp(offset, align), align: align}
		}
	}
	return layouts
}

func resolveTypeLayout(typeName string, structs map[string]typeLayout) (typeLayout, bool) {
	if l, ok := wgslTypeLayoutMap[typeName]; ok {
		return l, true
	}
	l, ok := structs[typeName]
	return l, ok
}

func roundUp(v, align uint64) uint64 {
	return (v + align - 1) / align * align
}

// parseVertexLayout builds a tightly packed vertex buffer layout from the first struct whose
// fields all carry @location attributes.
//
// Parameters:
//   - structs: the parsed struct blocks
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout
//   - bool: false when no vertex input struct exists
func parseVertexLayout(structs []parsedStruct) (wgpu.VertexBufferLayout, bool) {
	for _, ps := range structs {
		if len(ps.fields) == 0 {
			continue
		}
		attrs := make([]wgpu.VertexAttribute, 0, len(ps.fields))
		var offset uint64
		valid := true
		for _, f := range ps.fields {
			info, known := wgslVertexFormatMap[f.typeName]
			if f.builtin || f.location < 0 || !known {
				valid = false
				break
			}
			attrs = append(attrs, wgpu.VertexAttribute{
				Format:         info.format,
				Offset:         offset,
				ShaderLocation: uint32(f.location),
			})
			offset += info.size
		}
		if !valid {
			continue
		}
		return wgpu.VertexBufferLayout{
			ArrayStride: offset,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes:  attrs,
		}, true
	}
	return wgpu.VertexBufferLayout{}, false
}

// parseBindGroupLayouts extracts every @group(N) @binding(M) declaration into layout descriptors keyed by group.
// Uniform and storage buffers get a MinBindingSize resolved from the bound type when its layout is known.
//
// Parameters:
//   - source: WGSL source with comments stripped
//   - structs: the parsed struct blocks of the same source
//   - visibility: the stage visibility applied to all entries
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: layout descriptors keyed by group index
//   - map[int]map[int]string: variable names keyed by group and binding
//   - error: error if a declaration has a type that cannot be bound
func parseBindGroupLayouts(source string, structs []parsedStruct, visibility wgpu.ShaderStage) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string, error) {
	sizes := computeStructLayouts(structs)
	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	varNames := make(map[int]map[int]string)

	for _, match := range bindGroupDeclRegex.FindAllStringSubmatch(source, -1) {
		group, _ := strconv.Atoi(match[1])
		binding, _ := strconv.Atoi(match[2])
		addressSpace := strings.TrimSpace(match[3])
		varName := match[4]
		typeName := strings.TrimSpace(match[5])

		entry, err := classifyResource(uint32(binding), visibility, addressSpace, typeName)
		if err != nil {
			return nil, nil, fmt.Errorf("@group(%d) @binding(%d) %s: %w", group, binding, varName, err)
		}
		if entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			if l, ok := resolveTypeLayout(typeName, sizes); ok {
				entry.Buffer.MinBindingSize = l.size
			}
		}
		groups[group] = append(groups[group], entry)
		if varNames[group] == nil {
			varNames[group] = make(map[int]string)
		}
		varNames[group][binding] = varName
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for g, entries := range groups {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		result[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
	}
	return result, varNames, nil
}

func classifyResource(binding uint32, visibility wgpu.ShaderStage, addressSpace, typeName string) (wgpu.BindGroupLayoutEntry, error) {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
	}

	switch {
	case addressSpace == "uniform":
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	case strings.HasPrefix(addressSpace, "storage"):
		entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		if strings.Contains(addressSpace, "read_write") {
			entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		}
	case addressSpace != "":
		return entry, fmt.Errorf("unsupported address space %q", addressSpace)
	case typeName == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case typeName == "sampler_comparison":
		entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
	case strings.HasPrefix(typeName, "texture_"):
		base, param, _ := strings.Cut(strings.TrimSuffix(typeName, ">"), "<")
		dim, okDim := wgslTextureDimensionMap[base]
		sampleType, okType := wgslSampleTypeMap[strings.TrimSpace(param)]
		if !okDim || !okType {
			return entry, fmt.Errorf("unsupported texture type %q", typeName)
		}
		entry.Texture.ViewDimension = dim
		entry.Texture.SampleType = sampleType
	default:
		return entry, fmt.Errorf("unsupported resource type %q", typeName)
	}
	return entry, nil
}
