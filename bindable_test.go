package glbind

import (
	"errors"
	"testing"

	"github.com/gogpu/glbind/driver"
)

func TestBindTransition(t *testing.T) {
	ctx, d := newTestContext(t)
	b1, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	b2, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}

	changed, err := b1.Bind()
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if !changed {
		t.Error("first Bind() = unchanged, want a transition")
	}
	if bound, _ := b1.IsBound(); !bound {
		t.Error("IsBound() = false after Bind")
	}
	h1, err := b1.Handle()
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if got := d.BoundBuffer(driver.TargetArrayBuffer); got != h1 {
		t.Errorf("native bound buffer = %d, want %d", got, h1)
	}

	// Rebinding the bound resource must not touch the driver.
	changed, err = b1.Bind()
	if err != nil {
		t.Fatalf("redundant Bind() error = %v", err)
	}
	if changed {
		t.Error("redundant Bind() = changed, want no-op")
	}

	if _, err := b2.Bind(); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if bound, _ := b1.IsBound(); bound {
		t.Error("displaced resource still reports bound")
	}
	if got := ctx.Bound(KindArrayBuffer); got != Bindable(b2) {
		t.Errorf("Bound(KindArrayBuffer) = %v, want the second buffer", got)
	}
}

func TestKindSlotsAreIndependent(t *testing.T) {
	ctx, _ := newTestContext(t)
	ab, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	ub, err := NewUniformBuffer(driver.UsageDynamicDraw)
	if err != nil {
		t.Fatalf("NewUniformBuffer() error = %v", err)
	}
	if _, err := ab.Bind(); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if _, err := ub.Bind(); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if bound, _ := ab.IsBound(); !bound {
		t.Error("array buffer displaced by a uniform buffer bind")
	}
	if ctx.Bound(KindUniformBuffer) != Bindable(ub) {
		t.Error("uniform slot does not hold the uniform buffer")
	}
}

func TestUnbind(t *testing.T) {
	ctx, d := newTestContext(t)
	b, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	if _, err := b.Bind(); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if err := Unbind(KindArrayBuffer); err != nil {
		t.Fatalf("Unbind() error = %v", err)
	}
	if bound, _ := b.IsBound(); bound {
		t.Error("IsBound() = true after Unbind")
	}
	if got := ctx.Bound(KindArrayBuffer); got != nil {
		t.Errorf("Bound(KindArrayBuffer) = %v after Unbind, want nil", got)
	}
	if got := d.BoundBuffer(driver.TargetArrayBuffer); got != driver.DefaultObject {
		t.Errorf("native bound buffer = %d after Unbind, want 0", got)
	}
}

func TestUnbindFallsBackToDefault(t *testing.T) {
	ctx, _ := newTestContext(t)
	va, err := NewVertexArray()
	if err != nil {
		t.Fatalf("NewVertexArray() error = %v", err)
	}
	if _, err := va.Bind(); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if err := Unbind(KindVertexArray); err != nil {
		t.Fatalf("Unbind() error = %v", err)
	}
	def := ctx.Default(KindVertexArray)
	if got := ctx.Bound(KindVertexArray); got != def {
		t.Errorf("Bound(KindVertexArray) = %v after Unbind, want the default", got)
	}
}

func TestWithBoundRestoresPrevious(t *testing.T) {
	_, _ = newTestContext(t)
	b1, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	b2, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	if _, err := b1.Bind(); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	err = WithBound(b2, func() error {
		if bound, _ := b2.IsBound(); !bound {
			t.Error("scoped resource not bound inside WithBound")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithBound() error = %v", err)
	}
	if bound, _ := b1.IsBound(); !bound {
		t.Error("previous binding not restored after WithBound")
	}
}

func TestWithBoundRestoresUnboundState(t *testing.T) {
	ctx, _ := newTestContext(t)
	b, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	if err := WithBound(b, func() error { return nil }); err != nil {
		t.Fatalf("WithBound() error = %v", err)
	}
	if got := ctx.Bound(KindArrayBuffer); got != nil {
		t.Errorf("Bound(KindArrayBuffer) = %v after WithBound from unbound, want nil", got)
	}
}

func TestWithBoundAlreadyBound(t *testing.T) {
	_, _ = newTestContext(t)
	b, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	if _, err := b.Bind(); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if err := WithBound(b, func() error { return nil }); err != nil {
		t.Fatalf("WithBound() error = %v", err)
	}
	if bound, _ := b.IsBound(); !bound {
		t.Error("already-bound resource unbound by WithBound")
	}
}

func TestWithBoundNested(t *testing.T) {
	_, _ = newTestContext(t)
	b1, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	b2, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	err = WithBound(b1, func() error {
		return WithBound(b2, func() error {
			if bound, _ := b2.IsBound(); !bound {
				t.Error("inner resource not bound")
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("nested WithBound() error = %v", err)
	}
	if bound, _ := b1.IsBound(); bound {
		t.Error("outer binding survived past its scope")
	}
}

func TestWithBoundPropagatesError(t *testing.T) {
	_, _ = newTestContext(t)
	b, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	sentinel := errors.New("upload failed")
	if err := WithBound(b, func() error { return sentinel }); !errors.Is(err, sentinel) {
		t.Errorf("WithBound() error = %v, want %v", err, sentinel)
	}
	if bound, _ := b.IsBound(); bound {
		t.Error("binding not restored on error exit")
	}
}

func TestWithBoundDestroyedPrevious(t *testing.T) {
	_, _ = newTestContext(t)
	b1, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	b2, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	if _, err := b1.Bind(); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	err = WithBound(b2, func() error { return b1.Destroy() })
	if !errors.Is(err, ErrUseAfterDestroy) {
		t.Errorf("WithBound() error = %v, want ErrUseAfterDestroy from restore", err)
	}
}

func TestWithUnbound(t *testing.T) {
	_, d := newTestContext(t)
	b, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	if _, err := b.Bind(); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	err = WithUnbound(KindArrayBuffer, func() error {
		if got := d.BoundBuffer(driver.TargetArrayBuffer); got != driver.DefaultObject {
			t.Errorf("native bound buffer = %d inside WithUnbound, want 0", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithUnbound() error = %v", err)
	}
	if bound, _ := b.IsBound(); !bound {
		t.Error("binding not restored after WithUnbound")
	}
}

func TestDestroyScrubsBinding(t *testing.T) {
	ctx, _ := newTestContext(t)
	b, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	if _, err := b.Bind(); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if err := b.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if got := ctx.Bound(KindArrayBuffer); got != nil {
		t.Errorf("Bound(KindArrayBuffer) = %v after Destroy, want nil", got)
	}
}

func TestUseAfterDestroy(t *testing.T) {
	_, _ = newTestContext(t)
	b, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	if err := b.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if !b.Destroyed() {
		t.Error("Destroyed() = false after Destroy")
	}
	if _, err := b.Bind(); !errors.Is(err, ErrUseAfterDestroy) {
		t.Errorf("Bind() after Destroy error = %v, want ErrUseAfterDestroy", err)
	}
	if _, err := b.Handle(); !errors.Is(err, ErrUseAfterDestroy) {
		t.Errorf("Handle() after Destroy error = %v, want ErrUseAfterDestroy", err)
	}
	if err := b.Destroy(); !errors.Is(err, ErrDoubleDestroy) {
		t.Errorf("second Destroy() error = %v, want ErrDoubleDestroy", err)
	}
}

func TestNonShareableScopedToContext(t *testing.T) {
	a, _ := newTestContext(t)
	va, err := NewVertexArray()
	if err != nil {
		t.Fatalf("NewVertexArray() error = %v", err)
	}
	b, err := NewContext(800, 600, WithHidden(), ShareWith(a))
	if err != nil {
		t.Fatalf("NewContext(ShareWith) error = %v", err)
	}
	if !b.IsActive() {
		t.Fatal("context B should be active")
	}
	if va.ExistsInCurrentContext() {
		t.Error("vertex array should be confined to its owning context")
	}
	if _, err := va.Bind(); !errors.Is(err, ErrContextMismatch) {
		t.Errorf("Bind() under sibling context error = %v, want ErrContextMismatch", err)
	}
	if err := a.Activate(); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if _, err := va.Bind(); err != nil {
		t.Fatalf("Bind() under owner error = %v", err)
	}
}

func TestBindingsArePerScope(t *testing.T) {
	a, _ := newTestContext(t)
	buf, err := NewBuffer(driver.UsageStaticDraw)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	if _, err := buf.Bind(); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	c, err := NewContext(800, 600, WithHidden())
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	if got := c.Bound(KindArrayBuffer); got != nil {
		t.Errorf("independent context sees binding %v, want nil", got)
	}
	if got := a.Bound(KindArrayBuffer); got != Bindable(buf) {
		t.Error("owner's namespace lost its binding")
	}
}
