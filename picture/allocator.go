package picture

import (
	"fmt"
	"math"

	"github.com/kpfaulkner/videoframe-go/colour"
	"github.com/kpfaulkner/videoframe-go/util"
	log "github.com/sirupsen/logrus"
)

// Alignment is the guaranteed linesize and plane offset alignment of
// allocated pictures.
const Alignment = 32

// Size is the geometry of a picture.
type Size struct {
	Width  int32
	Height int32
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Allocator hands out backing memory for pictures.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte)
}

// PoolAllocator allocates from a util.BytePool.
type PoolAllocator struct {
	pool *util.BytePool
}

func NewPoolAllocator(pool *util.BytePool) *PoolAllocator {
	if pool == nil {
		pool = util.DefaultBytePool()
	}
	return &PoolAllocator{pool: pool}
}

var defaultAllocator Allocator = NewPoolAllocator(nil)

// DefaultAllocator is used by Create and by readers that are not given one.
func DefaultAllocator() Allocator {
	return defaultAllocator
}

func (a *PoolAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid allocation size %d", size)
	}
	return a.pool.Get(size), nil
}

func (a *PoolAllocator) Free(buf []byte) {
	a.pool.Put(buf)
}

// CheckSize applies the same bound as av_image_check_size so that plane
// arithmetic cannot overflow.
func CheckSize(width int32, height int32) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid picture size %dx%d", width, height)
	}
	if (int64(width)+128)*(int64(height)+128) >= math.MaxInt32/8 {
		return fmt.Errorf("picture size %dx%d too large", width, height)
	}
	return nil
}

// Linesizes returns the aligned linesize and row count of every plane.
func Linesizes(dims Size, pf PixelFormat) (linesize [MaxPlanes]int, rows [MaxPlanes]int, err error) {
	d, ok := pf.Descriptor()
	if !ok {
		return linesize, rows, fmt.Errorf("unsupported pixel format %v", pf)
	}
	if err = CheckSize(dims.Width, dims.Height); err != nil {
		return linesize, rows, err
	}
	for p := 0; p < d.Planes; p++ {
		linesize[p] = util.AlignUp(d.PlaneWidth(p, int(dims.Width)), Alignment)
		rows[p] = d.PlaneHeight(p, int(dims.Height))
	}
	return linesize, rows, nil
}

// AllocVideoFrame allocates a frame with room for dims at pf. All planes
// are carved out of a single allocation.
func AllocVideoFrame(dims Size, pf PixelFormat, alloc Allocator) (*RawFrame, error) {
	if alloc == nil {
		alloc = defaultAllocator
	}

	linesize, rows, err := Linesizes(dims, pf)
	if err != nil {
		log.Errorf("Error allocating %v %v frame: %v", dims, pf, err)
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	}

	total := 0
	for p := range linesize {
		total += linesize[p] * rows[p]
	}

	buf, err := alloc.Alloc(total)
	if err != nil {
		log.Errorf("Error allocating %d bytes for %v %v frame: %v", total, dims, pf, err)
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	if len(buf) < total {
		alloc.Free(buf)
		return nil, fmt.Errorf("%w: allocator returned %d bytes, need %d", ErrAllocation, len(buf), total)
	}

	video := &VideoData{
		Width:       dims.Width,
		Height:      dims.Height,
		PixelFormat: pf,
		ColorSpace:  colour.CS_UNSPECIFIED,
		ColorRange:  colour.CR_UNSPECIFIED,
		Linesize:    linesize,
	}
	offset := 0
	for p := range linesize {
		size := linesize[p] * rows[p]
		if size == 0 {
			continue
		}
		video.Planes[p] = buf[offset : offset+size : offset+size]
		offset += size
	}

	return &RawFrame{Data: video, buf: buf, alloc: alloc}, nil
}
