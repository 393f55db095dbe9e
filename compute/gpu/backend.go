//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/voidcluster/dither/compute"
)

//go:embed shaders/energy.wgsl
var energyWGSL string

//go:embed shaders/seed_extrema.wgsl
var seedWGSL string

//go:embed shaders/reduce.wgsl
var reduceWGSL string

const (
	wgSize          = 256
	gpuFenceTimeout = 5 * time.Second
	sentinelHi      = float32(3.4e38)
	sentinelLo      = float32(-3.4e38)
)

func init() {
	compute.Register(compute.NameGPU, newWGPUBackend)
}

func ceilDiv(n, d uint32) uint32 {
	if n == 0 {
		return 0
	}
	return (n + d - 1) / d
}

// WGPUBackend implements compute.Backend on top of a standalone Vulkan
// compute device. All three entry points (energy evaluation, extrema
// seeding, tree reduction) run as separate compute pipelines sharing a
// fixed set of buffers sized once for the backend's Dims.
type WGPUBackend struct {
	dims   compute.Dims
	kernel compute.Kernel
	handle *deviceHandle

	energy pipelineSet
	seed   pipelineSet
	reduce pipelineSet

	dimsBuf        hal.Buffer
	kernelBuf      hal.Buffer
	occupancyBuf   hal.Buffer
	energyBuf      hal.Buffer
	seedParamsBuf  hal.Buffer
	minValuesBuf   hal.Buffer
	minIndicesBuf  hal.Buffer
	maxValuesBuf   hal.Buffer
	maxIndicesBuf  hal.Buffer
	reduceStateBuf hal.Buffer
}

func newWGPUBackend(cfg compute.Config) (compute.Backend, error) {
	handle, err := acquireDevice()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", compute.ErrBackendUnavailable, err)
	}

	b := &WGPUBackend{dims: cfg.Dims, kernel: cfg.Kernel, handle: handle}
	if err := b.init(); err != nil {
		b.Close()
		return nil, fmt.Errorf("%w: %v", compute.ErrBackendUnavailable, err)
	}
	return b, nil
}

// Name implements compute.Backend.
func (b *WGPUBackend) Name() string { return compute.NameGPU }

func (b *WGPUBackend) init() error {
	device := b.handle.device
	n := uint32(b.dims.N())
	occWords := (n + 31) / 32

	var err error
	b.energy, err = buildPipeline(device, "dither_energy", energyWGSL, "cs_energy",
		[]bindingKind{bindUniform, bindStorageRO, bindStorageRO, bindStorageRW})
	if err != nil {
		return err
	}

	b.seed, err = buildPipeline(device, "dither_seed", seedWGSL, "cs_seed",
		[]bindingKind{bindUniform, bindStorageRO, bindStorageRO, bindStorageRW, bindStorageRW, bindStorageRW, bindStorageRW})
	if err != nil {
		return err
	}

	b.reduce, err = buildPipeline(device, "dither_reduce", reduceWGSL, "cs_reduce",
		[]bindingKind{bindUniform, bindStorageRW, bindStorageRW})
	if err != nil {
		return err
	}

	specs := []struct {
		target *hal.Buffer
		label  string
		size   uint64
		usage  gputypes.BufferUsage
	}{
		{&b.dimsBuf, "dither_dims", 16, gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst},
		{&b.kernelBuf, "dither_kernel", uint64(len(b.kernel.Weights)) * 4, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst},
		{&b.occupancyBuf, "dither_occupancy", uint64(occWords) * 4, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst},
		{&b.energyBuf, "dither_energy_out", uint64(n) * 4, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst | gputypes.BufferUsageCopySrc},
		{&b.seedParamsBuf, "dither_seed_params", 4, gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst},
		{&b.minValuesBuf, "dither_min_values", uint64(n) * 4, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst | gputypes.BufferUsageCopySrc},
		{&b.minIndicesBuf, "dither_min_indices", uint64(n) * 4, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst | gputypes.BufferUsageCopySrc},
		{&b.maxValuesBuf, "dither_max_values", uint64(n) * 4, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst | gputypes.BufferUsageCopySrc},
		{&b.maxIndicesBuf, "dither_max_indices", uint64(n) * 4, gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst | gputypes.BufferUsageCopySrc},
		{&b.reduceStateBuf, "dither_reduce_state", 8, gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst},
	}

	for _, s := range specs {
		buf, err := device.CreateBuffer(&hal.BufferDescriptor{Label: s.label, Size: s.size, Usage: s.usage})
		if err != nil {
			return fmt.Errorf("create %s buffer: %w", s.label, err)
		}
		*s.target = buf
	}

	b.handle.queue.WriteBuffer(b.kernelBuf, 0, packFloat32s(b.kernel.Weights))
	return nil
}

func (b *WGPUBackend) bindGroupEntries(buffers ...hal.Buffer) []gputypes.BindGroupEntry {
	entries := make([]gputypes.BindGroupEntry, len(buffers))
	for i, buf := range buffers {
		entries[i] = gputypes.BindGroupEntry{
			Binding:  uint32(i),
			Resource: gputypes.BufferBinding{Buffer: buf.NativeHandle(), Offset: 0, Size: 0},
		}
	}
	return entries
}

// dispatch records and submits a single compute pass on ps, waiting for
// completion before returning.
func (b *WGPUBackend) dispatch(ps pipelineSet, workgroups uint32, buffers ...hal.Buffer) error {
	if workgroups == 0 {
		return nil
	}
	device := b.handle.device

	bg, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "dither_bg",
		Layout:  ps.bgl,
		Entries: b.bindGroupEntries(buffers...),
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer device.DestroyBindGroup(bg)

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "dither_dispatch"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("dither_dispatch"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "dither_pass"})
	pass.SetPipeline(ps.pipeline)
	pass.SetBindGroup(0, bg, nil)
	pass.Dispatch(workgroups, 1, 1)
	pass.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := b.handle.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := device.Wait(fence, 1, gpuFenceTimeout)
	if err != nil {
		return fmt.Errorf("wait for gpu: %w", err)
	}
	if !ok {
		return fmt.Errorf("gpu timeout after %v", gpuFenceTimeout)
	}
	return nil
}

// Evaluate implements compute.Backend.
func (b *WGPUBackend) Evaluate(p *compute.Bitset, e []float64, reversed bool) error {
	n := uint32(b.dims.N())
	queue := b.handle.queue

	queue.WriteBuffer(b.dimsBuf, 0, packDims(uint32(b.dims.Width), uint32(b.dims.Height), uint32(b.kernel.R), reversed))
	queue.WriteBuffer(b.occupancyBuf, 0, packWords32(p.PackedWords32()))

	if err := b.dispatch(b.energy, ceilDiv(n, wgSize), b.dimsBuf, b.kernelBuf, b.occupancyBuf, b.energyBuf); err != nil {
		return fmt.Errorf("%w: evaluate: %v", compute.ErrBackendFailure, err)
	}

	data := make([]byte, n*4)
	if err := queue.ReadBuffer(b.energyBuf, 0, data); err != nil {
		return fmt.Errorf("%w: read energy: %v", compute.ErrBackendFailure, err)
	}
	unpackFloat64s(data, e)
	return nil
}

// Extrema implements compute.Backend using the seed+reduce pipelines: a
// single pass classifies every cell into the min-over-zeros and
// max-over-ones candidate arrays (masking the excluded class with a
// sentinel instead of compacting), then each array is halved down to one
// entry by repeated reduce dispatches. When ones are the majority
// (popcount*2 >= N) the complement of p is uploaded, so the seed pass
// targets the minority class exactly as the CPU reducer does.
func (b *WGPUBackend) Extrema(e []float64, p *compute.Bitset) (minZero, maxOne int, err error) {
	n := uint32(b.dims.N())
	queue := b.handle.queue

	occ := p
	if p.PopCount()*2 >= int(n) {
		occ = p.Complement()
	}
	queue.WriteBuffer(b.occupancyBuf, 0, packWords32(occ.PackedWords32()))
	queue.WriteBuffer(b.energyBuf, 0, packFloat32s(e))
	queue.WriteBuffer(b.seedParamsBuf, 0, packU32Single(n))

	if err := b.dispatch(b.seed, ceilDiv(n, wgSize), b.seedParamsBuf, b.occupancyBuf, b.energyBuf,
		b.minValuesBuf, b.minIndicesBuf, b.maxValuesBuf, b.maxIndicesBuf); err != nil {
		return 0, 0, fmt.Errorf("%w: seed extrema: %v", compute.ErrBackendFailure, err)
	}

	minVal, minIdx, err := b.reduceOne(b.minValuesBuf, b.minIndicesBuf, n, 0)
	if err != nil {
		return 0, 0, err
	}
	maxVal, maxIdx, err := b.reduceOne(b.maxValuesBuf, b.maxIndicesBuf, n, 1)
	if err != nil {
		return 0, 0, err
	}

	if minVal >= sentinelHi/2 || maxVal <= sentinelLo/2 {
		return 0, 0, fmt.Errorf("%w: pattern has no minority/majority split", compute.ErrBackendFailure)
	}
	return int(minIdx), int(maxIdx), nil
}

// reduceOne runs the tree reduction to a single (value, index) pair. mode 0
// selects the minimum, mode 1 the maximum; ties favor the smaller index.
func (b *WGPUBackend) reduceOne(values, indices hal.Buffer, n, mode uint32) (float32, uint32, error) {
	active := n
	for active > 1 {
		pairs := (active + 1) / 2
		b.handle.queue.WriteBuffer(b.reduceStateBuf, 0, packU32Pair(active, mode))
		if err := b.dispatch(b.reduce, ceilDiv(pairs, wgSize), b.reduceStateBuf, values, indices); err != nil {
			return 0, 0, fmt.Errorf("%w: reduce: %v", compute.ErrBackendFailure, err)
		}
		active = pairs
	}

	valData := make([]byte, 4)
	if err := b.handle.queue.ReadBuffer(values, 0, valData); err != nil {
		return 0, 0, fmt.Errorf("%w: read reduced value: %v", compute.ErrBackendFailure, err)
	}
	idxData := make([]byte, 4)
	if err := b.handle.queue.ReadBuffer(indices, 0, idxData); err != nil {
		return 0, 0, fmt.Errorf("%w: read reduced index: %v", compute.ErrBackendFailure, err)
	}
	return getF32(valData), getU32(idxData), nil
}

// Close implements compute.Backend, releasing every GPU resource: the
// buffers first, then the three pipeline sets in reverse creation order,
// then the device handle.
func (b *WGPUBackend) Close() {
	if b.handle == nil {
		return
	}
	device := b.handle.device
	if device != nil {
		for _, buf := range []hal.Buffer{
			b.dimsBuf, b.kernelBuf, b.occupancyBuf, b.energyBuf, b.seedParamsBuf,
			b.minValuesBuf, b.minIndicesBuf, b.maxValuesBuf, b.maxIndicesBuf, b.reduceStateBuf,
		} {
			if buf != nil {
				device.DestroyBuffer(buf)
			}
		}
		b.reduce.destroy(device)
		b.seed.destroy(device)
		b.energy.destroy(device)
	}
	b.handle.release()
}
