package srvenv

import (
	"github.com/Zubry/immutable-quadtree/internal/index"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	index index.ProvideFn
}

func (s *SrvEnv) ProvideIndex() index.ProvideFn {
	return s.index
}

func WithIndex(fn index.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.index = fn
		return s
	}
}
