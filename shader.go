package glbind

import "github.com/gogpu/glbind/driver"

// Shader is a single-stage shader object. Shaders are shareable resources
// but occupy no binding slot: they only exist to be compiled and linked
// into a Program, after which they can be destroyed.
type Shader struct {
	resource
	stage driver.ShaderStage
}

// NewShader creates an empty shader object for the given stage.
func NewShader(stage driver.ShaderStage) (*Shader, error) {
	d, err := activeDriver()
	if err != nil {
		return nil, err
	}
	h, err := d.CreateShader(stage)
	if err != nil {
		return nil, err
	}
	s := &Shader{stage: stage}
	if err := s.init(h, true); err != nil {
		return nil, err
	}
	monitorLeak(s, &s.resource, "Shader")
	return s, nil
}

// NewVertexShader creates an empty vertex shader.
func NewVertexShader() (*Shader, error) { return NewShader(driver.StageVertex) }

// NewFragmentShader creates an empty fragment shader.
func NewFragmentShader() (*Shader, error) { return NewShader(driver.StageFragment) }

// Stage returns the pipeline stage this shader compiles for.
func (s *Shader) Stage() driver.ShaderStage { return s.stage }

// Compile compiles source into the shader object. A failed compilation is
// returned as a *CompileError carrying the driver's diagnostic log.
func (s *Shader) Compile(source string) error {
	d, err := activeDriver()
	if err != nil {
		return err
	}
	h, err := s.Handle()
	if err != nil {
		return err
	}
	ok, log, err := d.CompileShader(h, source)
	if err != nil {
		return err
	}
	if !ok {
		return &CompileError{Stage: s.stage, Log: log}
	}
	return nil
}

// Destroy releases the shader object.
func (s *Shader) Destroy() error {
	return destroyResource(&s.resource, func(d driver.Driver, h driver.Handle) error {
		return d.DeleteShader(h)
	})
}

// Program is a linked shader program. Its binding slot is the installed
// program of the rendering state; programs are shareable.
type Program struct {
	bindable
}

// NewProgram creates an empty program object.
func NewProgram() (*Program, error) {
	d, err := activeDriver()
	if err != nil {
		return nil, err
	}
	h, err := d.CreateProgram()
	if err != nil {
		return nil, err
	}
	p := &Program{}
	if err := p.initBindable(h, KindProgram); err != nil {
		return nil, err
	}
	monitorLeak(p, &p.resource, "Program")
	return p, nil
}

// Bind installs this program as part of the rendering state.
func (p *Program) Bind() (bool, error) { return p.bind(p) }

// Use is a readability alias for Bind, matching the native vocabulary for
// programs.
func (p *Program) Use() (bool, error) { return p.Bind() }

// Destroy releases the program and clears any binding still referencing it.
func (p *Program) Destroy() error {
	return destroyBindable(p, func(d driver.Driver, h driver.Handle) error {
		return d.DeleteProgram(h)
	})
}

// Link attaches the given shaders, links the program, and detaches them
// again so their source and object code can be freed. A failed link is
// returned as a *LinkError carrying the driver's diagnostic log, with the
// shaders left attached.
func (p *Program) Link(shaders ...*Shader) error {
	d, err := activeDriver()
	if err != nil {
		return err
	}
	h, err := p.Handle()
	if err != nil {
		return err
	}
	for _, s := range shaders {
		sh, err := s.Handle()
		if err != nil {
			return err
		}
		if err := d.AttachShader(h, sh); err != nil {
			return err
		}
	}
	ok, log, err := d.LinkProgram(h)
	if err != nil {
		return err
	}
	if !ok {
		return &LinkError{Log: log}
	}
	for _, s := range shaders {
		sh, err := s.Handle()
		if err != nil {
			return err
		}
		if err := d.DetachShader(h, sh); err != nil {
			return err
		}
	}
	return nil
}
