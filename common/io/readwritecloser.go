package io

type (
	WriteFunc = func([]byte) (int, error)
	CloseFunc = func() error
)
