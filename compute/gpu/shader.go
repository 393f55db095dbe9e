//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// bindingKind describes one @group(0) @binding(n) slot when building a
// bind group layout. The binding index is implied by position in the slice
// passed to buildPipeline, matching every shader in this package.
type bindingKind int

const (
	bindUniform bindingKind = iota
	bindStorageRO
	bindStorageRW
)

func bindGroupLayoutEntries(kinds []bindingKind) []gputypes.BindGroupLayoutEntry {
	entries := make([]gputypes.BindGroupLayoutEntry, len(kinds))
	for i, k := range kinds {
		var bufType gputypes.BufferBindingType
		switch k {
		case bindUniform:
			bufType = gputypes.BufferBindingTypeUniform
		case bindStorageRO:
			bufType = gputypes.BufferBindingTypeReadOnlyStorage
		default:
			bufType = gputypes.BufferBindingTypeStorage
		}
		entries[i] = gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i),
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: bufType},
		}
	}
	return entries
}

// compileToSPIRV compiles WGSL source to the little-endian SPIR-V word
// stream hal.ShaderSource expects.
func compileToSPIRV(wgsl string) ([]uint32, error) {
	raw, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile shader: %w", err)
	}
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = uint32(raw[i*4]) |
			uint32(raw[i*4+1])<<8 |
			uint32(raw[i*4+2])<<16 |
			uint32(raw[i*4+3])<<24
	}
	return words, nil
}

// pipelineSet holds the four resources a single compute entry point needs:
// the shader module, its bind group layout, its pipeline layout, and the
// pipeline itself. Destroying a zero-value pipelineSet is a no-op, so a
// partially built set can always be torn down safely.
type pipelineSet struct {
	module   hal.ShaderModule
	bgl      hal.BindGroupLayout
	pl       hal.PipelineLayout
	pipeline hal.ComputePipeline
}

func buildPipeline(device hal.Device, label, wgsl, entryPoint string, kinds []bindingKind) (pipelineSet, error) {
	var set pipelineSet

	spirv, err := compileToSPIRV(wgsl)
	if err != nil {
		return set, err
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return set, fmt.Errorf("gpu: create shader module %s: %w", label, err)
	}
	set.module = module

	bgl, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   label + "_bgl",
		Entries: bindGroupLayoutEntries(kinds),
	})
	if err != nil {
		set.destroy(device)
		return pipelineSet{}, fmt.Errorf("gpu: create bind group layout %s: %w", label, err)
	}
	set.bgl = bgl

	pl, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pl",
		BindGroupLayouts: []hal.BindGroupLayout{bgl},
	})
	if err != nil {
		set.destroy(device)
		return pipelineSet{}, fmt.Errorf("gpu: create pipeline layout %s: %w", label, err)
	}
	set.pl = pl

	pipeline, err := device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  label,
		Layout: pl,
		Compute: hal.ComputeState{
			Module:     module,
			EntryPoint: entryPoint,
		},
	})
	if err != nil {
		set.destroy(device)
		return pipelineSet{}, fmt.Errorf("gpu: create compute pipeline %s: %w", label, err)
	}
	set.pipeline = pipeline

	return set, nil
}

func (s pipelineSet) destroy(device hal.Device) {
	if s.pipeline != nil {
		device.DestroyComputePipeline(s.pipeline)
	}
	if s.pl != nil {
		device.DestroyPipelineLayout(s.pl)
	}
	if s.bgl != nil {
		device.DestroyBindGroupLayout(s.bgl)
	}
	if s.module != nil {
		device.DestroyShaderModule(s.module)
	}
}
