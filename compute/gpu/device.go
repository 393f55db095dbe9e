//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// deviceHandle bundles the instance, device, and queue acquired for a
// standalone compute-only session. There is no window or surface involved:
// this is the same path used to run compute on gogpu's Vulkan backend
// without a render target.
type deviceHandle struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	adapter  string
}

// acquireDevice opens the first discrete or integrated GPU adapter exposed
// by the Vulkan backend, falling back to whatever adapter index 0 reports
// if neither is present (e.g. a software rasterizer in CI).
func acquireDevice() (*deviceHandle, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("gpu: vulkan backend not available")
	}

	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: no adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	opened, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: open device: %w", err)
	}

	return &deviceHandle{
		instance: instance,
		device:   opened.Device,
		queue:    opened.Queue,
		adapter:  selected.Info.Name,
	}, nil
}

// release tears down the instance. The device and queue returned by
// Adapter.Open do not need separate destruction; they are owned by the
// instance in this standalone usage.
func (h *deviceHandle) release() {
	if h.instance != nil {
		h.instance.Destroy()
		h.instance = nil
	}
}
