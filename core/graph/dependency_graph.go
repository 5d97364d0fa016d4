package graph

import (
	"github.com/tristendillon/scriptexport/core/logger"
)

// DependencyNode is one source file and its local-import edges.
type DependencyNode struct {
	FilePath     string
	Dependencies []string // files this one imports
	Dependents   []string // files importing this one
}

// DependencyGraph records the local-import relationships seen while a
// bundle is discovered. Node order is insertion order, which keeps cycle
// reports and listings stable between runs.
type DependencyGraph struct {
	nodes map[string]*DependencyNode
	order []string
}

// NewDependencyGraph creates an empty dependency graph
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[string]*DependencyNode),
		order: []string{},
	}
}

// AddNode registers a file, returning false if it was already known
func (dg *DependencyGraph) AddNode(filePath string) bool {
	if _, exists := dg.nodes[filePath]; exists {
		return false
	}
	dg.nodes[filePath] = &DependencyNode{
		FilePath:     filePath,
		Dependencies: []string{},
		Dependents:   []string{},
	}
	dg.order = append(dg.order, filePath)
	return true
}

// AddEdge records that from imports to
func (dg *DependencyGraph) AddEdge(from, to string) {
	dg.AddNode(from)
	dg.AddNode(to)

	fromNode := dg.nodes[from]
	if !contains(fromNode.Dependencies, to) {
		fromNode.Dependencies = append(fromNode.Dependencies, to)
	}

	toNode := dg.nodes[to]
	if !contains(toNode.Dependents, from) {
		toNode.Dependents = append(toNode.Dependents, from)
	}
}

// Nodes returns every file in insertion order
func (dg *DependencyGraph) Nodes() []string {
	nodes := make([]string, len(dg.order))
	copy(nodes, dg.order)
	return nodes
}

func (dg *DependencyGraph) Len() int {
	return len(dg.order)
}

// Has reports whether the file is part of the graph
func (dg *DependencyGraph) Has(filePath string) bool {
	_, exists := dg.nodes[filePath]
	return exists
}

// GetDependents returns files that import this file
func (dg *DependencyGraph) GetDependents(filePath string) []string {
	node, exists := dg.nodes[filePath]
	if !exists {
		return []string{}
	}

	dependents := make([]string, len(node.Dependents))
	copy(dependents, node.Dependents)
	return dependents
}

// GetAffectedFiles returns every file that transitively imports changedFile
func (dg *DependencyGraph) GetAffectedFiles(changedFile string) []string {
	visited := map[string]bool{changedFile: true}
	affected := []string{}

	dg.dfsVisitDependents(changedFile, visited, &affected)

	logger.Debug("DependencyGraph: %s affects %d files", changedFile, len(affected))
	return affected
}

// DetectCycles returns each distinct import cycle found by a depth-first
// walk, every cycle starting at the first of its files reached.
func (dg *DependencyGraph) DetectCycles() [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	recursionStack := make(map[string]bool)

	for _, filePath := range dg.order {
		if !visited[filePath] {
			dg.dfsFindCycles(filePath, visited, recursionStack, nil, &cycles)
		}
	}

	if len(cycles) > 0 {
		logger.Debug("DependencyGraph: Detected %d cycles", len(cycles))
	}
	return cycles
}

func (dg *DependencyGraph) dfsVisitDependents(filePath string, visited map[string]bool, affected *[]string) {
	node, exists := dg.nodes[filePath]
	if !exists {
		return
	}

	for _, dependent := range node.Dependents {
		if visited[dependent] {
			continue
		}
		visited[dependent] = true
		*affected = append(*affected, dependent)
		dg.dfsVisitDependents(dependent, visited, affected)
	}
}

func (dg *DependencyGraph) dfsFindCycles(filePath string, visited, recursionStack map[string]bool, path []string, cycles *[][]string) {
	visited[filePath] = true
	recursionStack[filePath] = true
	path = append(path, filePath)

	for _, dep := range dg.nodes[filePath].Dependencies {
		if !visited[dep] {
			dg.dfsFindCycles(dep, visited, recursionStack, path, cycles)
			continue
		}
		if !recursionStack[dep] {
			continue
		}
		for i, p := range path {
			if p == dep {
				cycle := make([]string, len(path)-i)
				copy(cycle, path[i:])
				*cycles = append(*cycles, cycle)
				break
			}
		}
	}

	recursionStack[filePath] = false
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
