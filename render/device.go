// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/paper"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (a windowing framework, or OpenDevice for standalone use)
// owns the device. The renderer only borrows it: it never destroys the
// device or queue it was given.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider. To be usable by
// NewFromProvider, the provider must also expose HAL handles through
// HalDevice() any and HalQueue() any.
type DeviceHandle = gpucontext.DeviceProvider

// halProvider is implemented by providers that expose HAL handles.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// halFromProvider extracts HAL device and queue from a provider.
func halFromProvider(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	if provider == nil {
		return nil, nil, ErrNilProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoHALDevice
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHALDevice, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is %T", ErrNoHALDevice, hp.HalQueue())
	}
	return device, queue, nil
}

// Backend names accepted by OpenDevice.
const (
	BackendNoop   = "noop"
	BackendVulkan = "vulkan"
)

// ErrNoBackend is returned by OpenDevice when the requested backend is
// unknown or not registered.
var ErrNoBackend = errors.New("render: GPU backend not available")

// HALDevice is a DeviceHandle over a HAL device and queue. When created by
// OpenDevice it also owns the instance and device and releases them in
// Close.
type HALDevice struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	adapter  hal.Adapter
	info     gpucontext.AdapterInfo
	format   gputypes.TextureFormat
	owned    bool
}

// NewHALDevice wraps an existing device and queue. The caller keeps
// ownership; Close does not destroy them.
func NewHALDevice(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) *HALDevice {
	return &HALDevice{
		device: device,
		queue:  queue,
		info:   gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown},
		format: format,
	}
}

// adapterType maps a HAL device type to its gpucontext equivalent.
func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// OpenDevice creates an instance on the named backend and opens a device
// on the first discrete or integrated GPU, falling back to the first
// adapter. The Vulkan backend must be registered by importing
// github.com/gogpu/wgpu/hal/vulkan.
func OpenDevice(backend string) (*HALDevice, error) {
	var instance hal.Instance
	switch backend {
	case BackendNoop:
		inst, err := noop.API{}.CreateInstance(nil)
		if err != nil {
			return nil, fmt.Errorf("create noop instance: %w", err)
		}
		instance = inst
	case BackendVulkan:
		b, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not registered", ErrNoBackend, backend)
		}
		inst, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
		if err != nil {
			return nil, fmt.Errorf("create %s instance: %w", backend, err)
		}
		instance = inst
	default:
		return nil, fmt.Errorf("%w: %q", ErrNoBackend, backend)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no adapters on %s", ErrNoBackend, backend)
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

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	paper.Logger().Info("render: device opened", "backend", backend, "adapter", selected.Info.Name)
	return &HALDevice{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		adapter:  selected.Adapter,
		info:     gpucontext.AdapterInfo{Name: selected.Info.Name, Type: adapterType(selected.Info.DeviceType)},
		format:   gputypes.TextureFormatBGRA8Unorm,
		owned:    true,
	}, nil
}

// Device returns the device as a gpucontext.Device.
func (h *HALDevice) Device() gpucontext.Device { return deviceRef{h} }

// Queue returns the queue as a gpucontext.Queue.
func (h *HALDevice) Queue() gpucontext.Queue { return h.queue }

// Adapter returns the hal.Adapter, or nil for wrapped devices.
func (h *HALDevice) Adapter() gpucontext.Adapter {
	if h.adapter == nil {
		return nil
	}
	return h.adapter
}

// SurfaceFormat returns the preferred surface format.
func (h *HALDevice) SurfaceFormat() gputypes.TextureFormat { return h.format }

// HalDevice returns the hal.Device.
func (h *HALDevice) HalDevice() any { return h.device }

// HalQueue returns the hal.Queue.
func (h *HALDevice) HalQueue() any { return h.queue }

// AdapterInfo returns the name and type of the adapter the device was
// opened on.
func (h *HALDevice) AdapterInfo() gpucontext.AdapterInfo { return h.info }

// Close destroys the device and instance if they were opened by
// OpenDevice. Safe to call multiple times.
func (h *HALDevice) Close() {
	if !h.owned {
		return
	}
	if h.device != nil {
		h.device.Destroy()
		h.device = nil
	}
	if h.instance != nil {
		h.instance.Destroy()
		h.instance = nil
	}
}

// deviceRef adapts a HALDevice to gpucontext.Device.
type deviceRef struct{ h *HALDevice }

// Poll is a no-op: HAL queues complete work without polling.
func (deviceRef) Poll(bool) {}

// Destroy closes the owning HALDevice.
func (d deviceRef) Destroy() { d.h.Close() }
