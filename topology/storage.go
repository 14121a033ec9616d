package topology

import (
	. "github.com/jenkinswire/jenkinswire/intrinsics"
	"github.com/jenkinswire/jenkinswire/resources/efs"
)

// NFS port the cluster network must be able to reach on the file system.
const nfsPort = 2049

// Access point constants: Jenkins state lives under a single subdirectory
// owned by the jenkins user (uid/gid 1000).
const (
	accessPointPath = "/jenkins-home"
	posixID         = "1000"
	accessPointMode = "755"
)

// ----------------------------------------------------------------------------
// EFS File System
// ----------------------------------------------------------------------------

// addFileSystem declares the shared file system that holds Jenkins state.
// The file system is destroyed with the stack: the deletion policy is Delete,
// so teardown leaves no residual storage.
func addFileSystem(g *Graph, cfg Config, cluster *Node) (*Node, error) {
	fs := efs.FileSystem{
		Encrypted: true,
		FileSystemTags: []any{
			Tag{Key: "Name", Value: cfg.AppName},
			appTag(cfg),
		},
	}
	node, err := g.AddResource(cfg.id("efs"), fs)
	if err != nil {
		return nil, err
	}
	node.DeletionPolicy = "Delete"

	// The file system lives in the cluster's virtual network.
	if err := g.Connect(node, cluster, KindNetwork); err != nil {
		return nil, err
	}
	return node, nil
}

// ----------------------------------------------------------------------------
// EFS Access Point
// ----------------------------------------------------------------------------

// addAccessPoint scopes container access to the /jenkins-home subdirectory.
// The access point grants the whole subdirectory to uid/gid 1000 with mode
// 755; a narrower boundary is a known gap.
func addAccessPoint(g *Graph, cfg Config, fileSystem *Node) (*Node, error) {
	ap := efs.AccessPoint{
		FileSystemId: Ref{LogicalName: fileSystem.LogicalID},
		PosixUser: efs.AccessPoint_PosixUser{
			Uid: posixID,
			Gid: posixID,
		},
		RootDirectory: efs.AccessPoint_RootDirectory{
			Path: accessPointPath,
			CreationInfo: efs.AccessPoint_CreationInfo{
				OwnerUid:    posixID,
				OwnerGid:    posixID,
				Permissions: accessPointMode,
			},
		},
		AccessPointTags: []any{appTag(cfg)},
	}
	node, err := g.AddResource(cfg.id("ap"), ap)
	if err != nil {
		return nil, err
	}
	if err := g.Connect(node, fileSystem, KindReference); err != nil {
		return nil, err
	}
	return node, nil
}

// ----------------------------------------------------------------------------
// EFS Mount Targets
// ----------------------------------------------------------------------------

// addMountTargets exposes the file system in both subnets. Mount targets do
// not support tags in CloudFormation, so the AppName tag is absent here.
func addMountTargets(g *Graph, cfg Config, fileSystem, efsSG *Node) ([]*Node, error) {
	subnets := []struct {
		suffix string
		param  string
	}{
		{"mt-a", "SubnetIdA"},
		{"mt-b", "SubnetIdB"},
	}

	var nodes []*Node
	for _, s := range subnets {
		mt := efs.MountTarget{
			FileSystemId:   Ref{LogicalName: fileSystem.LogicalID},
			SubnetId:       Param(s.param),
			SecurityGroups: []any{Ref{LogicalName: efsSG.LogicalID}},
		}
		node, err := g.AddResource(cfg.id(s.suffix), mt)
		if err != nil {
			return nil, err
		}
		if err := g.Connect(node, fileSystem, KindReference); err != nil {
			return nil, err
		}
		if err := g.Connect(node, efsSG, KindReference); err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
