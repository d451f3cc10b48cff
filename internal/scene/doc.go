// Package scene assembles gallery tiles. A tile is a plane mesh; a draped
// tile additionally carries a cloth world and a wind field, and copies the
// simulated positions back into its mesh on every Update.
package scene
