package game

import "errors"

// ErrNoSceneFactory LoadScene 前未设置场景工厂
var ErrNoSceneFactory = errors.New("scene factory not set")
