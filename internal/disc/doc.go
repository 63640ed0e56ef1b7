// Package disc talks to the optical drive: tray status via the CDROM ioctl
// interface, eject via the eject utility, and insertion events via udev
// netlink so a burn can start as soon as a blank disc lands in the tray.
package disc
